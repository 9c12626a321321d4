package sourcemap

import "sort"

// Cache is an index over the decoded mappings of one source map, sorted by
// generated position. It is immutable once built, so any number of readers
// may query it concurrently. A Cache always holds at least one mapping;
// decoding an empty result fails instead of producing an empty Cache.
type Cache struct {
	mappings   []Mapping
	sourceRoot string
}

// SourceRoot returns the document's sourceRoot, or the empty string when the
// document had none.
func (c *Cache) SourceRoot() string {
	return c.sourceRoot
}

// Len returns the number of mappings in the index.
func (c *Cache) Len() int {
	return len(c.mappings)
}

// MappingForGeneratedPosition returns the original source, line, and column
// information for the given position in the generated text. The line number
// is 1-based and the column 0-based.
//
// On an exact match the matching mapping is returned. Otherwise the first
// mapping at or after the queried position is returned, or the last mapping
// when the query lies beyond every entry. There is no not-found result;
// callers interested in proximity must inspect the returned position.
func (c *Cache) MappingForGeneratedPosition(line, column uint32) Mapping {
	key := CodePosition{Line: line, Column: column}
	i := sort.Search(len(c.mappings), func(i int) bool {
		return !c.mappings[i].Generated.less(key)
	})
	if i == len(c.mappings) {
		i = len(c.mappings) - 1
	}
	return c.mappings[i]
}
