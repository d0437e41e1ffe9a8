// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cds-lookup/internal/cds"
)

const (
	actionFuzzySearch  = "fuzzy_search"
	actionCDSFromTable = "get_cds_from_table"
	actionCDSFields    = "get_cds_fields"
	actionFieldMapping = "get_cds_field_mapping"
)

var actions = []string{actionFuzzySearch, actionCDSFromTable, actionCDSFields, actionFieldMapping}

func actionList() string {
	return strings.Join(actions, ", ")
}

// missingArgError reports an action parameter that was not supplied.
type missingArgError struct {
	flags []string
}

func (e *missingArgError) Error() string {
	names := make([]string, len(e.flags))
	for i, f := range e.flags {
		names[i] = "--" + f
	}
	return "Missing " + strings.Join(names, " or ") + " argument"
}

// lookupRequest carries the action and its parameters as given on the
// command line.
type lookupRequest struct {
	Action string
	Query  string
	Table  string
	CDS    string
	Field  string
}

func requestFromFlags(cmd *cobra.Command) lookupRequest {
	var req lookupRequest
	req.Action, _ = cmd.Flags().GetString("action")
	req.Query, _ = cmd.Flags().GetString("query")
	req.Table, _ = cmd.Flags().GetString("table")
	req.CDS, _ = cmd.Flags().GetString("cds")
	req.Field, _ = cmd.Flags().GetString("field")
	return req
}

// validate checks the action and its required parameters without touching
// the store.
func (r lookupRequest) validate() error {
	switch r.Action {
	case "":
		return &missingArgError{flags: []string{"action"}}
	case actionFuzzySearch:
		if r.Query == "" {
			return &missingArgError{flags: []string{"query"}}
		}
	case actionCDSFromTable:
		if r.Table == "" {
			return &missingArgError{flags: []string{"table"}}
		}
	case actionCDSFields:
		if r.CDS == "" {
			return &missingArgError{flags: []string{"cds"}}
		}
	case actionFieldMapping:
		if r.Table == "" || r.Field == "" {
			return &missingArgError{flags: []string{"table", "field"}}
		}
	default:
		return fmt.Errorf("invalid action %q: choose one of %s", r.Action, actionList())
	}
	return nil
}

// execute runs the validated request against store and returns the
// records and their count.
func (r lookupRequest) execute(ctx context.Context, store *cds.Store) (any, int, error) {
	switch r.Action {
	case actionFuzzySearch:
		res, err := store.FuzzySearch(ctx, r.Query)
		return res, len(res), err
	case actionCDSFromTable:
		res, err := store.ViewsForTable(ctx, r.Table)
		return res, len(res), err
	case actionCDSFields:
		res, err := store.FieldsOfView(ctx, r.CDS)
		return res, len(res), err
	case actionFieldMapping:
		res, err := store.FieldMapping(ctx, r.Table, r.Field)
		return res, len(res), err
	}
	return nil, 0, fmt.Errorf("invalid action %q: choose one of %s", r.Action, actionList())
}

// runLookup is the single error boundary of the CLI: every failure is
// printed as an error object on stdout.
func runLookup(cmd *cobra.Command, v *viper.Viper) error {
	out := cmd.OutOrStdout()

	// Resolve fail_on_error before anything can fail, so every error
	// object honours the flag, environment, and config file alike.
	sourcesErr := readConfigSources(cmd, v)
	failOnError := v.GetBool("fail_on_error")

	report := func(err error) error {
		if werr := cds.WriteError(out, err); werr != nil {
			return werr
		}
		if failOnError {
			return errReported
		}
		return nil
	}

	req := requestFromFlags(cmd)
	if err := req.validate(); err != nil {
		return report(err)
	}

	if sourcesErr != nil {
		return report(sourcesErr)
	}
	cfg, err := decodeConfig(v)
	if err != nil {
		return report(err)
	}

	store := cds.NewStore(cfg.DBPath)
	verbosef(cmd, cfg.Verbose, "Using database: %s\n", store.Path())

	records, n, err := req.execute(cmd.Context(), store)
	if err != nil {
		return report(err)
	}
	verbosef(cmd, cfg.Verbose, "%s: %d records\n", req.Action, n)

	if err := cds.Render(out, cfg.Format, records); err != nil {
		return report(err)
	}
	return nil
}
