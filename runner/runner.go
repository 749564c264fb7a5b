// Package runner validates queries in bulk: from command-line arguments,
// query files, or whole directories of query files.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnolang/qcheck"
	"github.com/gnolang/qcheck/scanner"
)

const (
	// RuleLength names the length limit applied before validation.
	RuleLength = "length"
	// MsgQueryTooLong is reported for queries over Config.MaxQueryLength.
	MsgQueryTooLong = "Query exceeds maximum length."

	commentPrefix = "#"
	maxLineSize   = 1 << 20
)

// QueryValidator validates a single query. *qcheck.Validator implements it.
type QueryValidator interface {
	Validate(query string) qcheck.Result
}

// Report is the result for one query together with where it came from.
type Report struct {
	Source string        `json:"source"`
	Line   int           `json:"line"`
	Query  string        `json:"query"`
	Result qcheck.Result `json:"result"`
}

// Runner applies a QueryValidator to many queries.
type Runner struct {
	validator  QueryValidator
	logger     *zap.Logger
	maxLength  int
	extensions []string
	progress   io.Writer
	workers    int
}

// New creates a Runner. A nil logger discards log output.
func New(validator QueryValidator, logger *zap.Logger, config Config) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxLength := config.MaxQueryLength
	if config.ignores(RuleLength) {
		maxLength = 0
	}
	return &Runner{
		validator:  validator,
		logger:     logger,
		maxLength:  maxLength,
		extensions: config.Extensions,
		workers:    runtime.NumCPU(),
	}
}

// SetProgressOutput enables a progress bar on w while directories are
// processed. A nil writer disables it.
func (r *Runner) SetProgressOutput(w io.Writer) {
	r.progress = w
}

// Validate applies the length limit and then the validator.
func (r *Runner) Validate(query string) qcheck.Result {
	if r.maxLength > 0 && len(query) > r.maxLength {
		return qcheck.Result{
			ErrorMessage: MsgQueryTooLong,
			Rule:         RuleLength,
			Position:     r.maxLength,
			Detail:       fmt.Sprintf("query is %d bytes, limit is %d", len(query), r.maxLength),
		}
	}
	return r.validator.Validate(query)
}

// ProcessSources validates in-memory queries. Reports carry source "<arg>"
// and the 1-based index of the query as the line.
func (r *Runner) ProcessSources(ctx context.Context, sources []string) ([]Report, error) {
	reports := make([]Report, 0, len(sources))
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		reports = append(reports, Report{
			Source: "<arg>",
			Line:   i + 1,
			Query:  source,
			Result: r.Validate(source),
		})
	}
	return reports, nil
}

// ProcessFile validates every query in a file, one per line. Blank lines and
// lines starting with '#' are skipped.
func (r *Runner) ProcessFile(path string) ([]Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	var reports []Report
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		q := strings.TrimSpace(sc.Text())
		if q == "" || strings.HasPrefix(q, commentPrefix) {
			continue
		}
		reports = append(reports, Report{
			Source: path,
			Line:   line,
			Query:  q,
			Result: r.Validate(q),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	r.logger.Debug("Processed query file", zap.String("file", path), zap.Int("queries", len(reports)))
	return reports, nil
}

// ProcessFiles processes each path in turn and returns all reports sorted
// by source and line.
func (r *Runner) ProcessFiles(ctx context.Context, paths []string) ([]Report, error) {
	var allReports []Report
	for _, path := range paths {
		reports, err := r.ProcessPath(ctx, path)
		if err != nil {
			r.logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			return nil, err
		}
		allReports = append(allReports, reports...)
	}

	SortReports(allReports)
	return allReports, nil
}

// ProcessPath processes a single file, or every query file below a
// directory on a bounded pool of workers. Files that cannot be read are
// logged and skipped.
func (r *Runner) ProcessPath(ctx context.Context, path string) ([]Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		return r.ProcessFile(path)
	}

	files, err := scanner.New(path, r.extensions...).Scan()
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", path, err)
	}

	var bar *progressbar.ProgressBar
	if r.progress != nil {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(r.progress),
			progressbar.OptionSetDescription(path),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	type fileResult struct {
		reports []Report
		err     error
	}

	// channel for results
	resultChan := make(chan fileResult, len(files))

	// limit the number of workers
	sem := make(chan struct{}, r.workers)

	started := 0
	for _, file := range files {
		select {
		case <-ctx.Done():
			// drain what is already running before giving up
			for i := 0; i < started; i++ {
				<-resultChan
			}
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}

		started++
		go func(fp string) {
			defer func() { <-sem }()

			fileReports, err := r.ProcessFile(fp)
			if err != nil {
				r.logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
			}
			if bar != nil {
				_ = bar.Add(1)
			}
			resultChan <- fileResult{reports: fileReports, err: err}
		}(file.Path)
	}

	// collect all results
	var reports []Report
	for i := 0; i < started; i++ {
		res := <-resultChan
		if res.err != nil {
			continue
		}
		reports = append(reports, res.reports...)
	}

	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(r.progress)
	}

	SortReports(reports)
	return reports, nil
}

// SortReports orders reports by source, then line.
func SortReports(reports []Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Source != reports[j].Source {
			return reports[i].Source < reports[j].Source
		}
		return reports[i].Line < reports[j].Line
	})
}

// Invalid returns the number of reports whose query failed validation.
func Invalid(reports []Report) int {
	n := 0
	for _, report := range reports {
		if !report.Result.IsValid {
			n++
		}
	}
	return n
}
