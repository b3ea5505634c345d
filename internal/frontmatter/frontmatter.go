// Package frontmatter splits, inspects and rewrites the YAML frontmatter
// block of a markdown document while preserving the document's newline style.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Doc is a markdown document split into its frontmatter block and body.
//
// Raw holds the frontmatter bytes without the `---` delimiters. When Had is
// false the document carried no frontmatter block and Raw is empty.
type Doc struct {
	Raw  []byte
	Body []byte
	Had  bool

	newline            string
	hasTrailingNewline bool
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Parse splits content into frontmatter and body.
//
// If the document does not start with a `---` delimiter line, the whole input
// becomes the body. The detected newline style (\n or \r\n) is retained for
// Render.
func Parse(content []byte) (Doc, error) {
	d := Doc{}
	d.newline, d.hasTrailingNewline = detectStyle(content)

	nl := d.newline
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		d.Body = content
		return d, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		// Empty frontmatter block: `---` immediately followed by `---`.
		d.Raw = []byte{}
		d.Body = content[start+len(open):]
		d.Had = true
		return d, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return Doc{}, ErrMissingClosingDelimiter
	}

	d.Raw = content[start : start+idx+len(nl)]
	d.Body = content[start+idx+len(closeSeq):]
	d.Had = true
	return d, nil
}

// Fields parses the raw frontmatter into a map. An absent or empty block
// yields an empty map.
func (d Doc) Fields() (map[string]any, error) {
	if len(d.Raw) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(d.Raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Has reports whether the frontmatter block defines key at the top level.
func (d Doc) Has(key string) bool {
	fields, err := d.Fields()
	if err != nil {
		return false
	}
	_, ok := fields[key]
	return ok
}

// Newline returns the document's newline sequence ("\n" or "\r\n").
func (d Doc) Newline() string {
	if d.newline == "" {
		return "\n"
	}
	return d.newline
}

// Render reassembles the document.
//
// Documents without a frontmatter block render as the bare body; otherwise the
// block is re-emitted between `---` delimiter lines using the original newline
// style.
func (d Doc) Render() []byte {
	if !d.Had {
		return d.Body
	}

	nl := d.Newline()
	delim := []byte("---" + nl)

	out := make([]byte, 0, 2*len(delim)+len(d.Raw)+len(d.Body))
	out = append(out, delim...)
	out = append(out, d.Raw...)
	out = append(out, delim...)
	out = append(out, d.Body...)
	return out
}

func detectStyle(content []byte) (newline string, trailing bool) {
	newline = "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			break
		}
	}

	trailing = len(content) > 0 && content[len(content)-1] == '\n'
	return newline, trailing
}
