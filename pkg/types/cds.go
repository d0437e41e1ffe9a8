// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchType labels which record set a fuzzy search hit came from.
type MatchType string

const (
	MatchCDSView   MatchType = "CDS View"
	MatchDDICTable MatchType = "DDIC Table"
)

// EntityMatch is one fuzzy search hit against either the CDS entity list
// or the table names of the table mapping.
type EntityMatch struct {
	Type        MatchType `json:"Type" yaml:"Type"`
	Name        string    `json:"Name" yaml:"Name"`
	Description string    `json:"Description" yaml:"Description"`
}

// TableMapping links a CDS view to a DDIC table it is built on.
type TableMapping struct {
	EntityName        string `json:"EntityName" yaml:"EntityName"`
	EntityDescription string `json:"EntityDescription" yaml:"EntityDescription"`
	TableName         string `json:"TableName" yaml:"TableName"`
	TableDescription  string `json:"TableDescription" yaml:"TableDescription"`
}

// ViewField is one field of a CDS view together with the table field it
// reads from. Calculated fields without a table field are not stored and
// therefore never appear.
type ViewField struct {
	EntityName        string `json:"EntityName" yaml:"EntityName"`
	EntityDescription string `json:"EntityDescription" yaml:"EntityDescription"`
	EntityFieldName   string `json:"EntityFieldName" yaml:"EntityFieldName"`
	EntityFieldDesc   string `json:"EntityFieldDesc" yaml:"EntityFieldDesc"`
	TableName         string `json:"TableName" yaml:"TableName"`
	TableField        string `json:"TableField" yaml:"TableField"`
}

// FieldMapping resolves a DDIC table field to the CDS view field exposing it.
type FieldMapping struct {
	EntityName      string `json:"EntityName" yaml:"EntityName"`
	EntityFieldName string `json:"EntityFieldName" yaml:"EntityFieldName"`
	EntityFieldDesc string `json:"EntityFieldDesc" yaml:"EntityFieldDesc"`
	TableName       string `json:"TableName" yaml:"TableName"`
	TableField      string `json:"TableField" yaml:"TableField"`
}
