package lint

// Severity indicates the importance level of a verification issue.
type Severity int

const (
	// SeverityWarning indicates issues that should be fixed but are
	// renderable.
	SeverityWarning Severity = iota
	// SeverityError indicates issues that will break the destination build.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Issue represents a single problem found in a converted document.
type Issue struct {
	FilePath string
	Severity Severity
	Rule     string
	Message  string
	// Line is the line number, 0 for file-level issues.
	Line int
}

// Result contains all issues found during verification.
type Result struct {
	Issues     []Issue
	FilesTotal int
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// Rule checks one converted document.
type Rule interface {
	Name() string
	Check(filePath string, content []byte) ([]Issue, error)
}
