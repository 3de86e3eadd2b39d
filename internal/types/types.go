package types

// IssueType identifies the silent-handling pattern a finding belongs to.
type IssueType string

const (
	IssueBareExcept     IssueType = "bare_except"
	IssueBroadException IssueType = "broad_exception"
	IssueEmptyExcept    IssueType = "empty_except"
	IssuePassOnly       IssueType = "pass_only"
)

// Issue represents a single silent exception handling finding.
// Issues are immutable values: the visitor creates them, the
// aggregator and renderers only read them.
type Issue struct {
	FilePath    string    `json:"file_path"`
	LineNumber  int       `json:"line_number"`
	Column      int       `json:"column"`
	IssueType   IssueType `json:"issue_type"`
	Description string    `json:"description"`
	CodeSnippet string    `json:"code_snippet,omitempty"`
}
