package types

// OutputFormat selects how lookup results are rendered on stdout.
type OutputFormat string

const (
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
	OutputTable OutputFormat = "table"
)

// LookupConfig holds the resolved settings for one cds-lookup invocation.
type LookupConfig struct {
	// DBPath is the SQLite knowledge base file. Defaults to
	// data/cds_knowledge.db next to the executable.
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path" validate:"required"`

	// Format selects the output encoding: json, yaml, or table.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format" validate:"required,oneof=json yaml table"`

	// Verbose writes diagnostics to stderr.
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`

	// FailOnError makes the process exit 1 after printing an error object.
	FailOnError bool `json:"fail_on_error" yaml:"fail_on_error" mapstructure:"fail_on_error"`
}
