package convert

import (
	"regexp"
	"strings"
)

// FunctionKind selects the structural output of a function macro.
type FunctionKind int

const (
	// FunctionAside renders the macro as an aside block.
	FunctionAside FunctionKind = iota
	// FunctionCodeTabs renders the macro as a fenced code block inside a
	// one-element tab group.
	FunctionCodeTabs
)

// FunctionMacro describes one parameterized macro of the source dialect.
// The optional literal argument overrides Default as the rendered message.
type FunctionMacro struct {
	Kind      FunctionKind
	AsideType string // FunctionAside: target aside type
	Title     string // FunctionAside: aside title
	TabLabel  string // FunctionCodeTabs: tab label
	CodeLang  string // FunctionCodeTabs: fence language
	Default   string
}

// MacroTable is the static lookup table both macro passes resolve against.
// It is read-only shared state, injected so tests and parallel batch workers
// get deterministic behavior.
type MacroTable struct {
	Variables map[string]string
	Functions map[string]FunctionMacro
}

// DefaultMacros returns the macro table of the source corpus. Variables are
// corpus-specific and default to empty; configuration supplies them.
func DefaultMacros() MacroTable {
	return MacroTable{
		Variables: map[string]string{},
		Functions: map[string]FunctionMacro{
			"ts_not_supported": {
				Kind:      FunctionAside,
				AsideType: AsideNote,
				Title:     "Not supported in TypeScript",
				Default:   "This feature is not supported in TypeScript.",
			},
			"experimental_feature_warning": {
				Kind:      FunctionAside,
				AsideType: AsideCaution,
				Title:     "Experimental Feature",
				Default:   "This feature is experimental and may change in future versions. Use with caution in production environments.",
			},
			"ts_not_supported_code": {
				Kind:     FunctionCodeTabs,
				TabLabel: "TypeScript",
				CodeLang: "ts",
				Default:  "Not supported in TypeScript",
			},
		},
	}
}

var (
	variableMacroRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)
	functionMacroRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\(([^)]*)\)\s*\}\}`)
	// Anything that looks like the start of a function macro; used to warn
	// about calls the strict grammar rejected.
	functionLikeRe = regexp.MustCompile(`\{\{\s*[A-Za-z_][A-Za-z0-9_]*\s*\(`)
)

// expandMacros resolves variable and function macros against table.
//
// Calls that do not match the grammar exactly (escaped quotes, mismatched
// quoting, unknown function names) are left byte-identical; each such site is
// recorded as a warning rather than failing the document.
func expandMacros(text string, table MacroTable) (string, []Warning) {
	var warnings []Warning

	out := replaceAllSubmatchFunc(functionMacroRe, text, func(match []string, start int) (string, bool) {
		name, rawArg := match[1], match[2]

		fn, known := table.Functions[name]
		if !known {
			warnings = append(warnings, warnf(lineAt(text, start), "unknown function macro %q left unexpanded", name))
			return "", false
		}
		msg, ok := parseLiteralArg(rawArg)
		if !ok {
			warnings = append(warnings, warnf(lineAt(text, start), "malformed argument in macro %s(%s) left unexpanded", name, rawArg))
			return "", false
		}
		if msg == "" {
			msg = fn.Default
		}
		return renderFunctionMacro(fn, msg), true
	})

	// Function-call shapes the strict grammar never matched at all (for
	// example a ')' inside the argument literal) also stay verbatim; surface
	// them so the silent no-op is at least observable.
	for _, loc := range functionLikeRe.FindAllStringIndex(text, -1) {
		if !coveredBy(functionMacroRe, text, loc[0]) {
			warnings = append(warnings, warnf(lineAt(text, loc[0]), "macro-like text %q does not match the call grammar", strings.TrimSpace(text[loc[0]:loc[1]])))
		}
	}

	out = replaceAllSubmatchFunc(variableMacroRe, out, func(match []string, start int) (string, bool) {
		value, ok := table.Variables[match[1]]
		return value, ok
	})

	return out, warnings
}

// parseLiteralArg validates the optional single- or double-quoted literal
// argument. Escaped quotes are not supported: a backslash anywhere makes the
// call malformed, matching the source dialect's strict grammar.
func parseLiteralArg(raw string) (string, bool) {
	arg := strings.TrimSpace(raw)
	if arg == "" {
		return "", true
	}
	if len(arg) < 2 {
		return "", false
	}
	quote := arg[0]
	if (quote != '"' && quote != '\'') || arg[len(arg)-1] != quote {
		return "", false
	}
	inner := arg[1 : len(arg)-1]
	if strings.ContainsRune(inner, rune(quote)) || strings.Contains(inner, `\`) {
		return "", false
	}
	return inner, true
}

func renderFunctionMacro(fn FunctionMacro, msg string) string {
	switch fn.Kind {
	case FunctionCodeTabs:
		return strings.Join([]string{
			"<Tabs>",
			`<TabItem label="` + escapeAttr(fn.TabLabel) + `">`,
			"```" + fn.CodeLang,
			"// " + msg,
			"```",
			"</TabItem>",
			"</Tabs>",
		}, "\n")
	default:
		return strings.Join([]string{
			asideOpenTarget(fn.AsideType, fn.Title),
			msg,
			":::",
		}, "\n")
	}
}

func asideOpenTarget(typ, title string) string {
	if title == "" {
		return ":::" + typ
	}
	return ":::" + typ + "[" + title + "]"
}

// replaceAllSubmatchFunc is ReplaceAllStringFunc with submatches and the
// match offset, and the option to decline a replacement.
func replaceAllSubmatchFunc(re *regexp.Regexp, text string, fn func(match []string, start int) (string, bool)) string {
	locs := re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = text[loc[2*g]:loc[2*g+1]]
			}
		}
		replacement, ok := fn(groups, loc[0])
		if !ok {
			continue
		}
		b.WriteString(text[last:loc[0]])
		b.WriteString(replacement)
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func coveredBy(re *regexp.Regexp, text string, offset int) bool {
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if offset >= loc[0] && offset < loc[1] {
			return true
		}
	}
	return false
}

func lineAt(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	return 1 + strings.Count(text[:offset], "\n")
}
