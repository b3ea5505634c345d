package convert

import (
	"strings"

	"git.home.luguber.info/inful/docmigrate/internal/frontmatter"
	"git.home.luguber.info/inful/docmigrate/internal/markdown"
)

// synthesizeFrontmatter promotes the document's first top-level heading to a
// `title` frontmatter field and injects the fields implied by the stripped
// markers. Fields created fresh are emitted in the order title, languages,
// community, ahead of any pre-existing frontmatter content. Keys the document
// already defines are never overwritten.
func synthesizeFrontmatter(doc frontmatter.Doc, flags markerFlags, markers Markers) (frontmatter.Doc, error) {
	var fields []frontmatter.Field

	if !doc.Has("title") {
		if title, ok := markdown.FirstH1(doc.Body); ok {
			body, err := removeHeading(doc.Body, title)
			if err != nil {
				return frontmatter.Doc{}, err
			}
			doc.Body = body
			fields = append(fields, frontmatter.Field{Key: "title", Value: escapeTitle(title.Text)})
		}
	}
	if flags.language && !doc.Has("languages") {
		fields = append(fields, frontmatter.Field{Key: "languages", Value: markers.LanguagesDefault})
	}
	if flags.community && !doc.Has("community") {
		fields = append(fields, frontmatter.Field{Key: "community", Value: true})
	}

	return doc.Prepend(fields...), nil
}

// removeHeading deletes the heading's source lines plus one immediately
// following blank line.
func removeHeading(body []byte, title markdown.Title) ([]byte, error) {
	end := title.End
	if lineEnd := nextLineEnd(body, end); lineEnd > end && isBlankBytes(body[end:lineEnd]) {
		end = lineEnd
	}
	return markdown.ApplyEdits(body, []markdown.Edit{{Start: title.Start, End: end}})
}

// escapeTitle applies the target frontmatter quoting rule: titles containing
// a colon or a quote character are wrapped in double quotes with internal
// double quotes escaped; anything else is emitted unquoted.
func escapeTitle(text string) string {
	if !strings.ContainsAny(text, `:"'`) {
		return text
	}
	return `"` + strings.ReplaceAll(text, `"`, `\"`) + `"`
}

func nextLineEnd(body []byte, pos int) int {
	for i := pos; i < len(body); i++ {
		if body[i] == '\n' {
			return i + 1
		}
	}
	return len(body)
}

func isBlankBytes(b []byte) bool {
	return len(strings.TrimSpace(string(b))) == 0
}
