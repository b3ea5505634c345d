package markdown

import (
	"fmt"
	"sort"
)

// Edit is a targeted byte-range replacement.
//
// Start and End are byte offsets into the original source, End exclusive.
// An empty Replacement deletes the range.
type Edit struct {
	Start       int
	End         int
	Replacement []byte
}

// ApplyEdits applies non-overlapping byte-range edits to source.
//
// Edits are applied from the end of the source toward the beginning so that
// earlier edits do not invalidate offsets of later ones.
func ApplyEdits(source []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(source) {
			return nil, fmt.Errorf("invalid edit [%d,%d) for source of %d bytes", e.Start, e.End, len(source))
		}
		if i > 0 && e.End > sorted[i-1].Start {
			return nil, fmt.Errorf("overlapping edits at offset %d", e.End)
		}
	}

	out := append([]byte(nil), source...)
	for _, e := range sorted {
		next := make([]byte, 0, len(out)-(e.End-e.Start)+len(e.Replacement))
		next = append(next, out[:e.Start]...)
		next = append(next, e.Replacement...)
		next = append(next, out[e.End:]...)
		out = next
	}

	return out, nil
}
