// Package filelist converts the documents/images columns between their stored
// text form, a JSON array of absolute paths, and a Go slice.
package filelist

import (
	"encoding/json"
	"strings"
)

// Empty is the stored form of a list with no files.
const Empty = "[]"

// Encode returns the JSON array form of paths. Order is kept as given.
func Encode(paths []string) string {
	if len(paths) == 0 {
		return Empty
	}
	data, err := json.Marshal(paths)
	if err != nil {
		// []string always marshals
		return Empty
	}
	return string(data)
}

// Decode parses a stored column value. Blank, null or malformed input yields
// an empty list; a corrupted column behaves as if no files were attached.
// Null elements are dropped rather than read as empty paths.
func Decode(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	var raw []*string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return []string{}
	}
	paths := make([]string, 0, len(raw))
	for _, p := range raw {
		if p != nil {
			paths = append(paths, *p)
		}
	}
	return paths
}

// AddPath appends path to the stored list.
func AddPath(existing, path string) string {
	return Encode(append(Decode(existing), path))
}

// RemovePath drops the first entry equal to path. The list is unchanged when
// path is absent.
func RemovePath(existing, path string) string {
	paths := Decode(existing)
	for i, p := range paths {
		if p == path {
			return Encode(append(paths[:i], paths[i+1:]...))
		}
	}
	return Encode(paths)
}
