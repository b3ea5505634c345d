package frontmatter

import (
	"bytes"
	"strconv"
)

// Field is one key/value pair destined for the top of a frontmatter block.
//
// A string value is emitted verbatim after `key: `, letting callers control
// quoting exactly (the conversion rules specify their own escaping). A bool
// renders as true/false and a []string as a block sequence.
type Field struct {
	Key   string
	Value any
}

// Prepend inserts fields, in order, before any existing frontmatter content.
//
// If the document has no frontmatter block one is synthesized. Existing
// content is left untouched, so keys already present must be filtered by the
// caller beforehand.
func (d Doc) Prepend(fields ...Field) Doc {
	if len(fields) == 0 {
		return d
	}

	nl := d.Newline()
	var buf bytes.Buffer
	for _, f := range fields {
		buf.WriteString(f.Key)
		buf.WriteString(":")
		switch v := f.Value.(type) {
		case string:
			buf.WriteString(" ")
			buf.WriteString(v)
			buf.WriteString(nl)
		case bool:
			buf.WriteString(" ")
			buf.WriteString(strconv.FormatBool(v))
			buf.WriteString(nl)
		case []string:
			buf.WriteString(nl)
			for _, item := range v {
				buf.WriteString("  - ")
				buf.WriteString(item)
				buf.WriteString(nl)
			}
		default:
			// Unsupported value types indicate a programming error upstream;
			// emit nothing rather than corrupt the block.
			buf.Truncate(buf.Len() - len(f.Key) - 1)
		}
	}

	out := d
	out.Had = true
	raw := make([]byte, 0, buf.Len()+len(d.Raw))
	raw = append(raw, buf.Bytes()...)
	raw = append(raw, d.Raw...)
	out.Raw = raw
	return out
}
