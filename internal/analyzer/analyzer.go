package analyzer

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/agusespa/pysilent/internal/types"
)

// Options configure a batch analysis run. The exclude pattern list is
// threaded in explicitly; there is no ambient default inside the
// traversal itself.
type Options struct {
	ExcludePatterns []string
	Workers         int
	Diagnostics     io.Writer
}

// Analyzer runs per-file analysis over single files or directory
// trees. Per-file work is stateless and independent, so directory
// runs fan out to a worker pool; each worker owns its own parser
// because a tree-sitter parser is not safe for concurrent use.
type Analyzer struct {
	parser          *PythonParser
	excludePatterns []string
	workers         int
	diag            io.Writer
}

func New(opts Options) (*Analyzer, error) {
	parser, err := NewPythonParser()
	if err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	diag := opts.Diagnostics
	if diag == nil {
		diag = os.Stderr
	}
	return &Analyzer{
		parser:          parser,
		excludePatterns: opts.ExcludePatterns,
		workers:         workers,
		diag:            diag,
	}, nil
}

// AnalyzePath analyzes a single file or a directory tree rooted at
// path. A missing path is the only fatal condition; per-file read and
// parse failures are reported as diagnostics and skipped.
func (a *Analyzer) AnalyzePath(path string) (*IssueAggregator, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("path %s does not exist", path)
	}

	if !info.IsDir() {
		agg := NewIssueAggregator()
		agg.Add(a.AnalyzeFile(path)...)
		return agg, nil
	}
	return a.analyzeDirectory(path)
}

// AnalyzeFile analyzes one file. All failures are isolated to the
// file: they produce a diagnostic line and an empty issue list, never
// an error that would abort a batch.
func (a *Analyzer) AnalyzeFile(path string) []types.Issue {
	return a.analyzeWith(a.parser, path)
}

func (a *Analyzer) analyzeWith(parser *PythonParser, path string) (issues []types.Issue) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(a.diag, "Error analyzing %s: %v\n", path, r)
			issues = nil
		}
	}()

	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(a.diag, "Error reading %s: %v\n", path, err)
		return nil
	}

	source := string(content)
	tree, err := parser.ParseFile(path, source)
	if err != nil {
		fmt.Fprintf(a.diag, "Syntax error in %s: %v\n", path, err)
		return nil
	}
	defer tree.Close()

	return NewHandlerVisitor(path, source).Visit(tree)
}

func (a *Analyzer) analyzeDirectory(root string) (*IssueAggregator, error) {
	files, err := a.collectFiles(root)
	if err != nil {
		return nil, err
	}

	jobs := make(chan string)
	results := make(chan []types.Issue)

	var wg sync.WaitGroup
	for i := 0; i < a.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parser, err := NewPythonParser()
			if err != nil {
				fmt.Fprintf(a.diag, "Error creating parser: %v\n", err)
				for range jobs {
				}
				return
			}
			for path := range jobs {
				results <- a.analyzeWith(parser, path)
			}
		}()
	}

	go func() {
		for _, path := range files {
			jobs <- path
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	agg := NewIssueAggregator()
	for issues := range results {
		agg.Add(issues...)
	}
	return agg, nil
}

func (a *Analyzer) collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(a.diag, "Error walking %s: %v\n", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !slices.Contains(a.parser.SupportedExtensions(), strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		if a.shouldExclude(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

func (a *Analyzer) shouldExclude(path string) bool {
	for _, pattern := range a.excludePatterns {
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}
