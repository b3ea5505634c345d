package convert

import "strings"

// Markers holds the literal sentinel lines the source corpus uses to flag
// page-level metadata, plus the frontmatter defaults they translate to.
type Markers struct {
	// LanguageStart/LanguageEnd form the fixed two-line language-support
	// sentinel. Both lines must appear, in order, for the marker to count.
	LanguageStart string
	LanguageEnd   string
	// Community is the one-line community-contribution sentinel.
	Community string
	// LanguagesDefault is the value written to the `languages` frontmatter
	// field when the language sentinel was present.
	LanguagesDefault []string
}

// DefaultMarkers returns the sentinel lines used by the source corpus.
func DefaultMarkers() Markers {
	return Markers{
		LanguageStart:    "<!-- LANGUAGES: python -->",
		LanguageEnd:      "<!-- /LANGUAGES -->",
		Community:        "<!-- COMMUNITY-CONTRIBUTED -->",
		LanguagesDefault: []string{"python"},
	}
}

// markerFlags records which sentinels were found (and removed) in a body.
type markerFlags struct {
	language  bool
	community bool
}

// stripMarkers deletes sentinel lines from the body and reports which were
// present. Sentinel matching is whole-line, whitespace-trimmed.
func stripMarkers(lines []string, m Markers) ([]string, markerFlags) {
	var flags markerFlags
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if m.LanguageStart != "" && trimmed == m.LanguageStart {
			if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == m.LanguageEnd {
				flags.language = true
				i++
				continue
			}
		}
		if m.Community != "" && trimmed == m.Community {
			flags.community = true
			continue
		}
		out = append(out, lines[i])
	}

	return out, flags
}
