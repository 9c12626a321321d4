package sourcemap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"codeberg.org/saruga/sourcemapper/internal/vlq"
)

const sourceMapVersion = 3

var (
	// ErrVersion reports a document whose version field is not 3.
	ErrVersion = errors.New("only source map version 3 is supported")

	// ErrNoMappings reports a document that decodes to zero mappings.
	ErrNoMappings = errors.New("source map contains no mappings")

	// ErrMissingLineColumn reports a segment with a source but no original
	// line and column.
	ErrMissingLineColumn = errors.New("found a source, but no line and column")

	// ErrMissingColumn reports a segment with a source and original line but
	// no original column.
	ErrMissingColumn = errors.New("found a source and line, but no column")

	// ErrSourceOutOfRange reports a resolved source index outside the
	// sources table.
	ErrSourceOutOfRange = errors.New("source index out of range")

	// ErrNameOutOfRange reports a resolved name index outside the names
	// table.
	ErrNameOutOfRange = errors.New("name index out of range")
)

// decodeState holds the delta accumulators threaded through the decode. The
// generated column resets to zero at the start of every line group; every
// other accumulator persists across segments and across line boundaries for
// the whole decode, which is how the format is defined.
type decodeState struct {
	prevGeneratedColumn int32
	prevSource          int32
	prevOriginalLine    int32
	prevOriginalColumn  int32
	prevName            int32
}

// ConsumeMap builds a query Cache from an already-parsed document. The
// mappings string is decoded segment by segment, cross-references into the
// sources and names tables are validated, and the result is stably sorted by
// generated position.
func ConsumeMap(doc *SourceMap) (*Cache, error) {
	if doc.Version != sourceMapVersion {
		return nil, fmt.Errorf("%w (got version %d)", ErrVersion, doc.Version)
	}

	mappings, err := decodeMappings(doc)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(mappings, func(i, j int) bool {
		return mappings[i].Generated.less(mappings[j].Generated)
	})

	return &Cache{
		mappings:   mappings,
		sourceRoot: doc.SourceRoot,
	}, nil
}

func decodeMappings(doc *SourceMap) ([]Mapping, error) {
	var mappings []Mapping
	var state decodeState

	for lineIdx, group := range strings.Split(doc.Mappings, ";") {
		// Line groups are 1-indexed by their position in the split.
		generatedLine := uint32(lineIdx + 1)
		state.prevGeneratedColumn = 0

		for segIdx, segment := range strings.Split(group, ",") {
			fields, err := decodeSegment(segment)
			if err != nil {
				return nil, segmentError(generatedLine, segIdx, err)
			}

			switch len(fields) {
			case 0:
				// Empty segment, e.g. a trailing comma. No mapping.
				continue
			case 2:
				return nil, segmentError(generatedLine, segIdx, ErrMissingLineColumn)
			case 3:
				return nil, segmentError(generatedLine, segIdx, ErrMissingColumn)
			}

			state.prevGeneratedColumn += fields[0]

			m := Mapping{
				Generated: CodePosition{
					Line:   generatedLine,
					Column: uint32(state.prevGeneratedColumn),
				},
			}

			if len(fields) >= 4 {
				state.prevSource += fields[1]
				if state.prevSource < 0 || int(state.prevSource) >= len(doc.Sources) {
					return nil, segmentError(generatedLine, segIdx,
						fmt.Errorf("%w: index %d, table has %d entries",
							ErrSourceOutOfRange, state.prevSource, len(doc.Sources)))
				}
				m.Source = doc.Sources[state.prevSource]

				// Original lines are stored 0-based in the stream.
				state.prevOriginalLine += fields[2]
				m.Original.Line = uint32(state.prevOriginalLine) + 1

				state.prevOriginalColumn += fields[3]
				m.Original.Column = uint32(state.prevOriginalColumn)
			}

			if len(fields) >= 5 {
				state.prevName += fields[4]
				if state.prevName < 0 || int(state.prevName) >= len(doc.Names) {
					return nil, segmentError(generatedLine, segIdx,
						fmt.Errorf("%w: index %d, table has %d entries",
							ErrNameOutOfRange, state.prevName, len(doc.Names)))
				}
				m.Name = doc.Names[state.prevName].String()
			}

			mappings = append(mappings, m)
		}
	}

	if len(mappings) == 0 {
		return nil, ErrNoMappings
	}
	return mappings, nil
}

// decodeSegment decodes every VLQ field of one comma-separated segment,
// advancing the cursor by the consumed character count.
func decodeSegment(segment string) ([]int32, error) {
	var fields []int32
	for pos := 0; pos < len(segment); {
		value, n, err := vlq.Decode(segment[pos:])
		if err != nil {
			return nil, fmt.Errorf("invalid VLQ mapping field: %w", err)
		}
		fields = append(fields, value)
		pos += n
	}
	return fields, nil
}

func segmentError(line uint32, segIdx int, err error) error {
	return fmt.Errorf("generated line %d, segment %d: %w", line, segIdx+1, err)
}
