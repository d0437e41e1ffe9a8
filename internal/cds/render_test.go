// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cds

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cds-lookup/pkg/types"
)

func sampleMatches() []types.EntityMatch {
	return []types.EntityMatch{
		{Type: types.MatchCDSView, Name: "Z_SALES_ORDER_VIEW", Description: "Sales Order Overview"},
		{Type: types.MatchDDICTable, Name: "VBAK", Description: "Sales Document Header"},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleMatches()))

	want := `[
  {
    "Type": "CDS View",
    "Name": "Z_SALES_ORDER_VIEW",
    "Description": "Sales Order Overview"
  },
  {
    "Type": "DDIC Table",
    "Name": "VBAK",
    "Description": "Sales Document Header"
  }
]
`
	assert.Equal(t, want, buf.String())
}

func TestWriteJSONEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []types.ViewField{}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteJSONNoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []types.EntityMatch{{Name: "A&B", Description: "<x>"}}))
	assert.Contains(t, buf.String(), `"A&B"`)
	assert.Contains(t, buf.String(), `"<x>"`)
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "missing argument",
			err:  errors.New("Missing --query argument"),
			want: "{\"error\": \"Missing --query argument\"}\n",
		},
		{
			name: "not found",
			err:  &NotFoundError{Path: "/opt/cds/data/cds_knowledge.db"},
			want: "{\"error\": \"Database not found at /opt/cds/data/cds_knowledge.db\"}\n",
		},
		{
			name: "quotes are escaped",
			err:  errors.New(`near "x": syntax error`),
			want: "{\"error\": \"near \\\"x\\\": syntax error\"}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteError(&buf, tt.err))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, []types.TableMapping{{
		EntityName: "Z_SALES_ORDER_VIEW", EntityDescription: "Sales Order Overview",
		TableName: "VBAK", TableDescription: "Sales Document Header",
	}}))

	want := `- EntityName: Z_SALES_ORDER_VIEW
  EntityDescription: Sales Order Overview
  TableName: VBAK
  TableDescription: Sales Document Header
`
	assert.Equal(t, want, buf.String())
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleMatches()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "Type"))
	assert.Contains(t, lines[0], "Description")
	assert.True(t, strings.HasPrefix(lines[1], "---"))
	assert.Contains(t, lines[2], "Z_SALES_ORDER_VIEW")
	assert.Contains(t, lines[3], "Sales Document Header")
	assert.Equal(t, "", lines[4])
	assert.Equal(t, "2 results", lines[5])
}

func TestWriteTableTruncatesWideCells(t *testing.T) {
	var buf bytes.Buffer
	long := strings.Repeat("X", 45)
	require.NoError(t, WriteTable(&buf, []types.EntityMatch{{Type: types.MatchCDSView, Name: long}}))
	assert.Contains(t, buf.String(), strings.Repeat("X", 27)+"...")
	assert.NotContains(t, buf.String(), long)
}

func TestWriteTableTruncatesByRune(t *testing.T) {
	var buf bytes.Buffer
	name := strings.Repeat("A", 26) + "ÄÖÜßé"
	require.NoError(t, WriteTable(&buf, []types.EntityMatch{
		{Type: types.MatchCDSView, Name: name, Description: "Kundenauftrag Übersicht"},
		{Type: types.MatchCDSView, Name: "ÄÖÜ", Description: "kurz"},
	}))

	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("A", 26)+"Ä...")
	assert.Contains(t, out, "Kundenauftrag Übersicht")

	lines := strings.Split(out, "\n")
	// Type (10) and Name (30) columns plus two separators.
	col := 10 + 2 + 30 + 2
	for _, line := range lines[2:4] {
		runes := []rune(line)
		require.Greater(t, len(runes), col)
		assert.NotEqual(t, ' ', runes[col], line)
		assert.Equal(t, ' ', runes[col-1], line)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteTableReturnsWriteError(t *testing.T) {
	err := WriteTable(failingWriter{}, sampleMatches())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, []types.FieldMapping{}))
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestRenderUnsupportedFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, types.OutputFormat("xml"), sampleMatches())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "xml"`)
}

func TestWriteTableUnsupportedType(t *testing.T) {
	err := WriteTable(&bytes.Buffer{}, []string{"x"})
	require.Error(t, err)
}
