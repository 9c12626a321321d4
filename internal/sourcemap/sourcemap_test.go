package sourcemap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/saruga/sourcemapper/internal/vlq"
)

const duplicateNamesMap = `{
	"version": 3,
	"file": "foo.js",
	"sources": ["source.js"],
	"names": ["name1", "name1", "name3"],
	"mappings": ";EAACA;;IAEEA;;MAEEE",
	"sourceRoot": "http://example.com"
}`

func TestConsumeBasic(t *testing.T) {
	cache, err := Consume([]byte(`{
		"version": 3,
		"file": "foo.js",
		"sourceRoot": "http://example.com/",
		"sources": ["/a"],
		"names": [],
		"mappings": "AACA",
		"sourcesContent": ["foo"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/", cache.SourceRoot())
	assert.Equal(t, 1, cache.Len())

	m := cache.MappingForGeneratedPosition(1, 0)
	assert.Equal(t, Mapping{
		Generated: CodePosition{Line: 1, Column: 0},
		Original:  CodePosition{Line: 2, Column: 0},
		Source:    "/a",
	}, m)
}

func TestConsumeDuplicateNames(t *testing.T) {
	cache, err := Consume([]byte(duplicateNamesMap))
	require.NoError(t, err)

	tests := []struct {
		line, column uint32
		expected     Mapping
	}{
		{2, 2, Mapping{
			Generated: CodePosition{Line: 2, Column: 2},
			Original:  CodePosition{Line: 1, Column: 1},
			Source:    "source.js",
			Name:      "name1",
		}},
		{4, 4, Mapping{
			Generated: CodePosition{Line: 4, Column: 4},
			Original:  CodePosition{Line: 3, Column: 3},
			Source:    "source.js",
			Name:      "name1",
		}},
		{6, 6, Mapping{
			Generated: CodePosition{Line: 6, Column: 6},
			Original:  CodePosition{Line: 5, Column: 5},
			Source:    "source.js",
			Name:      "name3",
		}},
	}

	for _, tt := range tests {
		actual := cache.MappingForGeneratedPosition(tt.line, tt.column)
		assert.Equal(t, tt.expected, actual, "position (%d,%d)", tt.line, tt.column)
	}
}

func TestConsumeDuplicateSources(t *testing.T) {
	cache, err := Consume([]byte(`{
		"version": 3,
		"file": "foo.js",
		"sources": ["source1.js", "source1.js", "source3.js"],
		"names": [],
		"mappings": ";EAAC;;IAEE;;MEEE",
		"sourceRoot": "http://example.com"
	}`))
	require.NoError(t, err)

	assert.Equal(t, "source1.js", cache.MappingForGeneratedPosition(2, 2).Source)
	assert.Equal(t, "source1.js", cache.MappingForGeneratedPosition(4, 4).Source)
	assert.Equal(t, "source3.js", cache.MappingForGeneratedPosition(6, 6).Source)
}

func TestConsumeRejectsVersion(t *testing.T) {
	for _, doc := range []string{
		`{"version": 2, "sources": ["a"], "names": [], "mappings": "AAAA"}`,
		`{"version": 4, "sources": ["a"], "names": [], "mappings": "AAAA"}`,
		`{"sources": ["a"], "names": [], "mappings": "AAAA"}`,
	} {
		_, err := Consume([]byte(doc))
		assert.ErrorIs(t, err, ErrVersion, "document %s", doc)
	}
}

func TestConsumeRejectsInvalidJSON(t *testing.T) {
	_, err := Consume([]byte(`{"version": 3,`))
	require.Error(t, err)
}

func TestConsumeRejectsEmptyMappings(t *testing.T) {
	for _, mappings := range []string{"", ";;;", ",", ";,;,"} {
		_, err := ConsumeMap(&SourceMap{
			Version:  3,
			Sources:  []string{"a.js"},
			Mappings: mappings,
		})
		assert.ErrorIs(t, err, ErrNoMappings, "mappings %q", mappings)
	}
}

func TestConsumeRejectsShortSegments(t *testing.T) {
	// "AA" decodes to two fields, "AAA" to three; both shapes are invalid.
	_, err := ConsumeMap(&SourceMap{
		Version:  3,
		Sources:  []string{"a.js"},
		Mappings: "AA",
	})
	assert.ErrorIs(t, err, ErrMissingLineColumn)

	_, err = ConsumeMap(&SourceMap{
		Version:  3,
		Sources:  []string{"a.js"},
		Mappings: "AAA",
	})
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestConsumeRejectsMalformedVLQ(t *testing.T) {
	// 'g' keeps its continuation bit set with no digit following.
	_, err := ConsumeMap(&SourceMap{
		Version:  3,
		Sources:  []string{"a.js"},
		Mappings: "g",
	})
	assert.ErrorIs(t, err, vlq.ErrTruncatedVLQ)

	// '*' is outside the alphabet.
	_, err = ConsumeMap(&SourceMap{
		Version:  3,
		Sources:  []string{"a.js"},
		Mappings: "AAAA,*",
	})
	assert.ErrorIs(t, err, vlq.ErrInvalidBase64)
}

func TestConsumeRejectsDanglingSource(t *testing.T) {
	// Source delta 2 with a single-entry sources table.
	_, err := ConsumeMap(&SourceMap{
		Version:  3,
		Sources:  []string{"a.js"},
		Mappings: "AEAA",
	})
	require.ErrorIs(t, err, ErrSourceOutOfRange)
	assert.Contains(t, err.Error(), "index 2")
	assert.Contains(t, err.Error(), "1 entries")
}

func TestConsumeRejectsDanglingName(t *testing.T) {
	// Name delta 2 with a single-entry names table.
	_, err := ConsumeMap(&SourceMap{
		Version:  3,
		Sources:  []string{"a.js"},
		Names:    []Name{{str: "x"}},
		Mappings: "AAAAE",
	})
	require.ErrorIs(t, err, ErrNameOutOfRange)
	assert.Contains(t, err.Error(), "index 2")
}

func TestConsumeRejectsNegativeSource(t *testing.T) {
	// Source delta -1 pushes the accumulator below zero.
	_, err := ConsumeMap(&SourceMap{
		Version:  3,
		Sources:  []string{"a.js"},
		Mappings: "ADAA",
	})
	assert.ErrorIs(t, err, ErrSourceOutOfRange)
}

// Only the generated column accumulator resets at line boundaries. A segment
// that omits the original-side fields must not disturb the source, original
// line/column, and name accumulators for later segments.
func TestConsumeAccumulatorsPersistAcrossLines(t *testing.T) {
	cache, err := ConsumeMap(&SourceMap{
		Version:  3,
		Sources:  []string{"a.js", "b.js"},
		Mappings: "ACEA;E;EAAA",
	})
	require.NoError(t, err)
	require.Equal(t, 3, cache.Len())

	// Line 1 establishes source index 1, original line 2, original column 0.
	first := cache.MappingForGeneratedPosition(1, 0)
	assert.Equal(t, "b.js", first.Source)
	assert.Equal(t, CodePosition{Line: 3, Column: 0}, first.Original)

	// Line 2 carries only a generated column; no original side at all.
	second := cache.MappingForGeneratedPosition(2, 2)
	assert.Equal(t, "", second.Source)
	assert.Equal(t, CodePosition{Line: 0, Column: 0}, second.Original)

	// Line 3's zero deltas resolve against line 1's accumulators, not a
	// reset state. Its generated column restarts from zero, though.
	third := cache.MappingForGeneratedPosition(3, 2)
	assert.Equal(t, uint32(2), third.Generated.Column)
	assert.Equal(t, "b.js", third.Source)
	assert.Equal(t, CodePosition{Line: 3, Column: 0}, third.Original)
}

func TestConsumeIntegerNames(t *testing.T) {
	cache, err := Consume([]byte(`{
		"version": 3,
		"sources": ["a.js"],
		"names": ["foo", 42],
		"mappings": "AAAAC"
	}`))
	require.NoError(t, err)

	m := cache.MappingForGeneratedPosition(1, 0)
	assert.Equal(t, "42", m.Name)
}

// Mappings with equal generated positions keep their parse order.
func TestConsumeStableOrderOnTies(t *testing.T) {
	cache, err := ConsumeMap(&SourceMap{
		Version:  3,
		Sources:  []string{"a.js"},
		Mappings: "AAAA,AAAC",
	})
	require.NoError(t, err)
	require.Equal(t, 2, cache.Len())

	// Both segments sit at generated (1,0); the first parsed one wins the
	// lookup.
	m := cache.MappingForGeneratedPosition(1, 0)
	assert.Equal(t, CodePosition{Line: 1, Column: 0}, m.Original)
}

func TestMappingForGeneratedPositionNearest(t *testing.T) {
	cache, err := Consume([]byte(duplicateNamesMap))
	require.NoError(t, err)

	// Before the first mapping: the first mapping is returned.
	before := cache.MappingForGeneratedPosition(1, 0)
	assert.Equal(t, CodePosition{Line: 2, Column: 2}, before.Generated)

	// Between mappings: the next mapping at or after the query.
	between := cache.MappingForGeneratedPosition(3, 0)
	assert.Equal(t, CodePosition{Line: 4, Column: 4}, between.Generated)

	// Same line, past the segment's column.
	sameLine := cache.MappingForGeneratedPosition(4, 5)
	assert.Equal(t, CodePosition{Line: 6, Column: 6}, sameLine.Generated)

	// Past the last mapping: clamped to the last entry.
	past := cache.MappingForGeneratedPosition(100, 100)
	assert.Equal(t, CodePosition{Line: 6, Column: 6}, past.Generated)
}

func TestNameUnmarshal(t *testing.T) {
	doc := &SourceMap{}
	err := json.Unmarshal([]byte(`{"version":3,"sources":[],"names":["x", 7, -3],"mappings":"A"}`), doc)
	require.NoError(t, err)
	require.Len(t, doc.Names, 3)
	assert.Equal(t, "x", doc.Names[0].String())
	assert.Equal(t, "7", doc.Names[1].String())
	assert.Equal(t, "-3", doc.Names[2].String())
}
