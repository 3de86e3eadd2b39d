package analyzer

import (
	"sort"

	"github.com/agusespa/pysilent/internal/types"
)

// IssueAggregator merges issues produced by independently analyzed
// files. Merging is associative and commutative: files can be
// processed in any order or partition and the grouped result is
// identical. Sorting is deferred to the read accessors, so the
// arrival order of per-file batches never matters.
type IssueAggregator struct {
	byFile map[string][]types.Issue
	byType map[types.IssueType]int
	total  int
}

func NewIssueAggregator() *IssueAggregator {
	return &IssueAggregator{
		byFile: make(map[string][]types.Issue),
		byType: make(map[types.IssueType]int),
	}
}

// Add records issues from one file's analysis. No issue is ever
// dropped.
func (a *IssueAggregator) Add(issues ...types.Issue) {
	for _, issue := range issues {
		a.byFile[issue.FilePath] = append(a.byFile[issue.FilePath], issue)
		a.byType[issue.IssueType]++
		a.total++
	}
}

// Merge folds another aggregator into this one.
func (a *IssueAggregator) Merge(other *IssueAggregator) {
	for _, issues := range other.byFile {
		a.Add(issues...)
	}
}

// Total returns the overall issue count.
func (a *IssueAggregator) Total() int {
	return a.total
}

// CountsByType returns per-issue-type counts.
func (a *IssueAggregator) CountsByType() map[types.IssueType]int {
	counts := make(map[types.IssueType]int, len(a.byType))
	for t, n := range a.byType {
		counts[t] = n
	}
	return counts
}

// Files returns the sorted, deduplicated list of files with at least
// one issue.
func (a *IssueAggregator) Files() []string {
	files := make([]string, 0, len(a.byFile))
	for path := range a.byFile {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// IssuesForFile returns a file's issues ordered by line.
func (a *IssueAggregator) IssuesForFile(path string) []types.Issue {
	issues := append([]types.Issue(nil), a.byFile[path]...)
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].LineNumber < issues[j].LineNumber
	})
	return issues
}

// AllIssues returns every issue ordered by file path, then line.
func (a *IssueAggregator) AllIssues() []types.Issue {
	var issues []types.Issue
	for _, path := range a.Files() {
		issues = append(issues, a.IssuesForFile(path)...)
	}
	return issues
}
