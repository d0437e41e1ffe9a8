// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cds

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cds-lookup/pkg/types"
)

// Render writes records to w in the given format.
func Render(w io.Writer, format types.OutputFormat, records any) error {
	switch format {
	case types.OutputJSON, "":
		return WriteJSON(w, records)
	case types.OutputYAML:
		return WriteYAML(w, records)
	case types.OutputTable:
		return WriteTable(w, records)
	default:
		return fmt.Errorf("unsupported format %q: use json, yaml, or table", format)
	}
}

// WriteJSON writes v as JSON indented by two spaces, without HTML escaping.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteYAML writes v as a YAML document indented by two spaces.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteError writes the one-key error object {"error": "<message>"} on a
// single line.
func WriteError(w io.Writer, err error) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if encErr := enc.Encode(err.Error()); encErr != nil {
		return encErr
	}
	msg := strings.TrimSuffix(buf.String(), "\n")
	_, werr := fmt.Fprintf(w, "{\"error\": %s}\n", msg)
	return werr
}

// WriteTable writes records as a fixed-width text table followed by a
// record count.
func WriteTable(w io.Writer, records any) error {
	var (
		header []string
		widths []int
		rows   [][]string
	)

	switch rs := records.(type) {
	case []types.EntityMatch:
		header = []string{"Type", "Name", "Description"}
		widths = []int{10, 30, 0}
		for _, r := range rs {
			rows = append(rows, []string{string(r.Type), r.Name, r.Description})
		}
	case []types.TableMapping:
		header = []string{"EntityName", "TableName", "EntityDescription", "TableDescription"}
		widths = []int{30, 16, 40, 0}
		for _, r := range rs {
			rows = append(rows, []string{r.EntityName, r.TableName, r.EntityDescription, r.TableDescription})
		}
	case []types.ViewField:
		header = []string{"EntityFieldName", "TableName", "TableField", "EntityFieldDesc"}
		widths = []int{30, 16, 20, 0}
		for _, r := range rs {
			rows = append(rows, []string{r.EntityFieldName, r.TableName, r.TableField, r.EntityFieldDesc})
		}
	case []types.FieldMapping:
		header = []string{"EntityName", "EntityFieldName", "TableName", "TableField", "EntityFieldDesc"}
		widths = []int{30, 30, 16, 20, 0}
		for _, r := range rs {
			rows = append(rows, []string{r.EntityName, r.EntityFieldName, r.TableName, r.TableField, r.EntityFieldDesc})
		}
	default:
		return fmt.Errorf("cannot render %T as a table", records)
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}

	var b strings.Builder
	b.WriteString(tableLine(header, widths) + "\n")
	b.WriteString(strings.Repeat("-", tableWidth(widths)) + "\n")
	for _, row := range rows {
		b.WriteString(tableLine(row, widths) + "\n")
	}
	fmt.Fprintf(&b, "\n%d results\n", len(rows))

	_, err := io.WriteString(w, b.String())
	return err
}

// tableLine pads each cell to its column width, counted in runes. A zero
// width marks the last, unbounded column.
func tableLine(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		width := widths[i]
		if width == 0 {
			parts[i] = cell
			continue
		}
		runes := []rune(cell)
		if len(runes) > width {
			runes = append(runes[:width-3], '.', '.', '.')
		}
		parts[i] = string(runes) + strings.Repeat(" ", width-len(runes))
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func tableWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		if w == 0 {
			w = 40
		}
		total += w + 2
	}
	return total - 2
}
