// Package sourcemap consumes Source Map v3 documents and answers
// generated-to-original position queries over them.
//
// It implements the consuming half of the format described at
// https://sourcemaps.info/spec.html: the mappings string is decoded into an
// ordered index once, and lookups are binary searches over that index.
package sourcemap

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// SourceMap is the source map JSON envelope.
//
// According to the spec, source maps have the following attributes:
//
//   - version: which version of the source map spec the map follows
//   - sources: URLs of the original source files
//   - names: identifiers referenced by individual mappings
//   - sourceRoot: optional URL root all sources are relative to
//   - mappings: base 64 VLQ string holding the actual mappings
//   - file: optional name of the generated file the map describes
//
// sourcesContent is deliberately not decoded: it can hold megabytes of
// original text that nothing here consumes.
type SourceMap struct {
	Version    int      `json:"version"`
	Sources    []string `json:"sources"`
	Names      []Name   `json:"names"`
	SourceRoot string   `json:"sourceRoot,omitempty"`
	Mappings   string   `json:"mappings"`
	File       string   `json:"file,omitempty"`
}

// Name is one entry of the names table. Documents in the wild carry both
// string and integer entries; integer entries render in decimal when a
// mapping resolves them.
type Name struct {
	str   string
	num   int64
	isNum bool
}

// UnmarshalJSON accepts either a JSON string or a JSON integer.
func (n *Name) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		n.isNum = false
		return json.Unmarshal(data, &n.str)
	}
	n.isNum = true
	return json.Unmarshal(data, &n.num)
}

func (n Name) String() string {
	if n.isNum {
		return strconv.FormatInt(n.num, 10)
	}
	return n.str
}

// Consume parses a raw source map document and builds a query Cache from it.
// Decoding is all or nothing: any malformed input yields an error and no
// Cache.
func Consume(data []byte) (*Cache, error) {
	var doc SourceMap
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing source map: %w", err)
	}
	return ConsumeMap(&doc)
}
