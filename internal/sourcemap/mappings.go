package sourcemap

import (
	"math"
)

// mapping is one decoded segment of the "mappings" field.
type mapping struct {
	genLine   uint32
	genColumn uint32
	source    int32 // -1 when the segment has no source
	line      uint32
	column    uint32
	name      int32 // -1 when the segment has no name
}

// parseMappings decodes a mappings string. Source and name indices are checked
// against the given table sizes.
func parseMappings(s string, numSources, numNames int) ([]mapping, error) {
	var (
		out []mapping

		genLine   int64
		genColumn int64
		source    int64
		line      int64
		column    int64
		name      int64

		fields [5]int64
	)

	pos := 0
	for pos < len(s) {
		switch s[pos] {
		case ';':
			genLine++
			genColumn = 0
			pos++
			continue
		case ',':
			pos++
			continue
		}

		n := 0
		for pos < len(s) && s[pos] != ',' && s[pos] != ';' {
			if n == len(fields) {
				return nil, formatErrorf("segment at line %d has more than %d fields", genLine, len(fields))
			}
			v, next, err := decodeVLQ(s, pos)
			if err != nil {
				return nil, err
			}
			fields[n] = v
			n++
			pos = next
		}
		if n != 1 && n != 4 && n != 5 {
			return nil, formatErrorf("segment at line %d has %d fields", genLine, n)
		}

		genColumn += fields[0]
		m := mapping{source: -1, name: -1}
		if n >= 4 {
			source += fields[1]
			line += fields[2]
			column += fields[3]
			if source < 0 || source >= int64(numSources) {
				return nil, formatErrorf("source index %d out of range", source)
			}
			m.source = int32(source)
		}
		if n == 5 {
			name += fields[4]
			if name < 0 || name >= int64(numNames) {
				return nil, formatErrorf("name index %d out of range", name)
			}
			m.name = int32(name)
		}

		for _, v := range []int64{genLine, genColumn, line, column} {
			if v < 0 || v > math.MaxUint32 {
				return nil, formatErrorf("position %d out of range at line %d", v, genLine)
			}
		}
		m.genLine = uint32(genLine)
		m.genColumn = uint32(genColumn)
		if n >= 4 {
			m.line = uint32(line)
			m.column = uint32(column)
		}
		out = append(out, m)
	}
	return out, nil
}
