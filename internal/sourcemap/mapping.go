package sourcemap

// CodePosition is a location in a text file. Line is 1-based, Column is
// 0-based, matching how the format addresses generated and original text.
type CodePosition struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

// less orders positions by line, then column.
func (p CodePosition) less(o CodePosition) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// Mapping relates one generated position to its original position. Source
// and Name are already resolved from the sources and names tables; both are
// empty when the segment carried no original-side fields.
type Mapping struct {
	Generated CodePosition
	Original  CodePosition
	Source    string
	Name      string
}
