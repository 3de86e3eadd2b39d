package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/agusespa/pysilent/internal/analyzer"
	"github.com/agusespa/pysilent/internal/types"
)

// Renderer turns aggregated analysis results into an output form.
type Renderer interface {
	Render(w io.Writer, agg *analyzer.IssueAggregator) error
}

// TextRenderer writes the human-readable report grouped by file.
type TextRenderer struct {
	ShowSnippets bool
}

func (r *TextRenderer) Render(w io.Writer, agg *analyzer.IssueAggregator) error {
	if agg.Total() == 0 {
		_, err := fmt.Fprintln(w, "✅ No silent exception handling issues found!")
		return err
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("🚨 Found %d silent exception handling issues:\n\n", agg.Total()))

	for _, path := range agg.Files() {
		builder.WriteString(fmt.Sprintf("📁 %s\n", path))
		builder.WriteString(strings.Repeat("=", len(path)) + "\n")

		for _, issue := range agg.IssuesForFile(path) {
			builder.WriteString(fmt.Sprintf("  Line %d: %s [%s]\n", issue.LineNumber, issue.Description, issue.IssueType))

			if r.ShowSnippets && issue.CodeSnippet != "" {
				builder.WriteString("  Code:\n")
				for _, line := range strings.Split(issue.CodeSnippet, "\n") {
					builder.WriteString(fmt.Sprintf("    %s\n", line))
				}
			}
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	builder.WriteString("📊 Issue Summary:\n")
	counts := agg.CountsByType()
	issueTypes := make([]string, 0, len(counts))
	for t := range counts {
		issueTypes = append(issueTypes, string(t))
	}
	sort.Strings(issueTypes)
	for _, t := range issueTypes {
		builder.WriteString(fmt.Sprintf("  %s: %d\n", t, counts[types.IssueType(t)]))
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

// jsonResult is the structured report shape.
type jsonResult struct {
	Issues          []types.Issue  `json:"issues"`
	TotalCount      int            `json:"total_count"`
	FilesWithIssues []string       `json:"files_with_issues"`
	FilesCount      int            `json:"files_count"`
	Summary         map[string]int `json:"summary"`
}

// JSONRenderer writes every issue field plus summary counts as JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, agg *analyzer.IssueAggregator) error {
	issues := agg.AllIssues()
	if issues == nil {
		issues = []types.Issue{}
	}

	summary := make(map[string]int)
	for t, n := range agg.CountsByType() {
		summary[string(t)] = n
	}

	result := jsonResult{
		Issues:          issues,
		TotalCount:      agg.Total(),
		FilesWithIssues: agg.Files(),
		FilesCount:      len(agg.Files()),
		Summary:         summary,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// FilesOnlyRenderer writes one affected file path per line, nothing
// else.
type FilesOnlyRenderer struct{}

func (r *FilesOnlyRenderer) Render(w io.Writer, agg *analyzer.IssueAggregator) error {
	for _, path := range agg.Files() {
		if _, err := fmt.Fprintln(w, path); err != nil {
			return err
		}
	}
	return nil
}

// FixPlanRenderer writes the affected-file list with a remediation
// recommendation based on how many files need fixing.
type FixPlanRenderer struct{}

func (r *FixPlanRenderer) Render(w io.Writer, agg *analyzer.IssueAggregator) error {
	files := agg.Files()

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d issues in %d files:\n", agg.Total(), len(files)))
	for _, path := range files {
		builder.WriteString(fmt.Sprintf("  %s\n", path))
	}

	switch {
	case len(files) > 5:
		builder.WriteString(fmt.Sprintf("\n🚀 Parallel fix recommended for %d files\n", len(files)))
		builder.WriteString("Execute with parallel agents for faster fixing\n")
	case len(files) > 0:
		builder.WriteString(fmt.Sprintf("\n✅ Sequential fix recommended for %d files\n", len(files)))
		builder.WriteString("Small number of files can be fixed sequentially\n")
	default:
		builder.WriteString("\n✅ No files need fixing!\n")
	}

	_, err := io.WriteString(w, builder.String())
	return err
}
