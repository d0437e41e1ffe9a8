// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sqlutil holds small database/sql helpers shared by the lookup queries.
package sqlutil

import (
	"database/sql"
	"strings"
)

// LikeEscapeClause must follow every LIKE comparison against a pattern
// from ContainsPattern.
const LikeEscapeClause = `ESCAPE '\'`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern returns a LIKE pattern matching any value that contains
// s literally. LIKE metacharacters in s are escaped.
func ContainsPattern(s string) string {
	return "%" + likeReplacer.Replace(s) + "%"
}

// ScanRows scans all rows into a slice using the provided scanner and
// closes rows. The result is never nil, so an empty result encodes as [].
func ScanRows[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// String returns the value of a nullable text column, or "" for NULL.
func String(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
