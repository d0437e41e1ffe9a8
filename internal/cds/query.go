// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cds

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pdiddy/cds-lookup/internal/sqlutil"
	"github.com/pdiddy/cds-lookup/pkg/types"
)

const (
	// subSearchLimit caps each half of a fuzzy search.
	subSearchLimit = 20

	// fuzzyResultLimit caps the concatenated fuzzy search result.
	fuzzyResultLimit = 50
)

const (
	sqlSearchEntities = `
		SELECT DISTINCT 'CDS View' AS Type, EntityName AS Name, EntityDescription AS Description
		FROM cds_entities
		WHERE EntityName LIKE ? ` + sqlutil.LikeEscapeClause + ` OR EntityDescription LIKE ? ` + sqlutil.LikeEscapeClause + `
		LIMIT ?`

	sqlSearchTables = `
		SELECT DISTINCT 'DDIC Table' AS Type, TableName AS Name, TableDescription AS Description
		FROM cds_table_mapping
		WHERE TableName LIKE ? ` + sqlutil.LikeEscapeClause + ` OR TableDescription LIKE ? ` + sqlutil.LikeEscapeClause + `
		LIMIT ?`

	sqlViewsForTable = `
		SELECT DISTINCT EntityName, EntityDescription, TableName, TableDescription
		FROM cds_table_mapping
		WHERE TableName = ?`

	sqlFieldsOfView = `
		SELECT EntityName, EntityDescription, EntityFieldName, EntityFieldDesc, TableName, TableField
		FROM cds_field_mapping
		WHERE EntityName = ?`

	sqlFieldMapping = `
		SELECT EntityName, EntityFieldName, EntityFieldDesc, TableName, TableField
		FROM cds_field_mapping
		WHERE TableName = ? AND TableField = ?`
)

// FuzzySearch finds CDS views and DDIC tables whose name or description
// contains query. The match is case-sensitive and query is taken
// literally. Views and tables are searched separately, each capped at 20
// distinct rows, and the concatenation (views first) is capped at 50.
func (s *Store) FuzzySearch(ctx context.Context, query string) ([]types.EntityMatch, error) {
	return withDB(ctx, s, func(db *sql.DB) ([]types.EntityMatch, error) {
		pattern := sqlutil.ContainsPattern(query)

		results, err := queryMatches(ctx, db, sqlSearchEntities, pattern)
		if err != nil {
			return nil, err
		}

		tables, err := queryMatches(ctx, db, sqlSearchTables, pattern)
		if err != nil {
			return nil, err
		}
		results = append(results, tables...)

		if len(results) > fuzzyResultLimit {
			results = results[:fuzzyResultLimit]
		}
		return results, nil
	})
}

func queryMatches(ctx context.Context, db *sql.DB, query, pattern string) ([]types.EntityMatch, error) {
	rows, err := db.QueryContext(ctx, query, pattern, pattern, subSearchLimit)
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (types.EntityMatch, error) {
		var (
			m           types.EntityMatch
			matchType   string
			name        sql.NullString
			description sql.NullString
		)
		if err := rows.Scan(&matchType, &name, &description); err != nil {
			return m, err
		}
		m.Type = types.MatchType(matchType)
		m.Name = sqlutil.String(name)
		m.Description = sqlutil.String(description)
		return m, nil
	})
}

// ViewsForTable returns the distinct CDS views built on the DDIC table.
// The table name is matched exactly after upper-casing.
func (s *Store) ViewsForTable(ctx context.Context, table string) ([]types.TableMapping, error) {
	return withDB(ctx, s, func(db *sql.DB) ([]types.TableMapping, error) {
		rows, err := db.QueryContext(ctx, sqlViewsForTable, strings.ToUpper(table))
		if err != nil {
			return nil, err
		}
		return sqlutil.ScanRows(rows, scanTableMapping)
	})
}

func scanTableMapping(rows *sql.Rows) (types.TableMapping, error) {
	var entityName, entityDesc, tableName, tableDesc sql.NullString
	if err := rows.Scan(&entityName, &entityDesc, &tableName, &tableDesc); err != nil {
		return types.TableMapping{}, err
	}
	return types.TableMapping{
		EntityName:        sqlutil.String(entityName),
		EntityDescription: sqlutil.String(entityDesc),
		TableName:         sqlutil.String(tableName),
		TableDescription:  sqlutil.String(tableDesc),
	}, nil
}

// FieldsOfView lists every mapped field of the CDS view. The view name is
// matched exactly after upper-casing. An unknown view yields an empty
// list.
func (s *Store) FieldsOfView(ctx context.Context, view string) ([]types.ViewField, error) {
	return withDB(ctx, s, func(db *sql.DB) ([]types.ViewField, error) {
		rows, err := db.QueryContext(ctx, sqlFieldsOfView, strings.ToUpper(view))
		if err != nil {
			return nil, err
		}
		return sqlutil.ScanRows(rows, scanViewField)
	})
}

func scanViewField(rows *sql.Rows) (types.ViewField, error) {
	var entityName, entityDesc, fieldName, fieldDesc, tableName, tableField sql.NullString
	if err := rows.Scan(&entityName, &entityDesc, &fieldName, &fieldDesc, &tableName, &tableField); err != nil {
		return types.ViewField{}, err
	}
	return types.ViewField{
		EntityName:        sqlutil.String(entityName),
		EntityDescription: sqlutil.String(entityDesc),
		EntityFieldName:   sqlutil.String(fieldName),
		EntityFieldDesc:   sqlutil.String(fieldDesc),
		TableName:         sqlutil.String(tableName),
		TableField:        sqlutil.String(tableField),
	}, nil
}

// FieldMapping resolves a DDIC table field to the CDS view fields that
// expose it. Both names are matched exactly after upper-casing.
func (s *Store) FieldMapping(ctx context.Context, table, field string) ([]types.FieldMapping, error) {
	return withDB(ctx, s, func(db *sql.DB) ([]types.FieldMapping, error) {
		rows, err := db.QueryContext(ctx, sqlFieldMapping, strings.ToUpper(table), strings.ToUpper(field))
		if err != nil {
			return nil, err
		}
		return sqlutil.ScanRows(rows, scanFieldMapping)
	})
}

func scanFieldMapping(rows *sql.Rows) (types.FieldMapping, error) {
	var entityName, fieldName, fieldDesc, tableName, tableField sql.NullString
	if err := rows.Scan(&entityName, &fieldName, &fieldDesc, &tableName, &tableField); err != nil {
		return types.FieldMapping{}, err
	}
	return types.FieldMapping{
		EntityName:      sqlutil.String(entityName),
		EntityFieldName: sqlutil.String(fieldName),
		EntityFieldDesc: sqlutil.String(fieldDesc),
		TableName:       sqlutil.String(tableName),
		TableField:      sqlutil.String(tableField),
	}, nil
}
