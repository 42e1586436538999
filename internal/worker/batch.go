package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/newsanalyst/newsanalyst/internal/codec"
	"github.com/newsanalyst/newsanalyst/internal/validate"
)

// Validator defines the interface for validating one document
type Validator interface {
	ValidateFile(path string, kind codec.Kind) validate.FileResult
}

// ValidateJob validates a single document
type ValidateJob struct {
	Index     int
	Path      string
	Kind      codec.Kind
	Validator Validator
}

// Execute executes the validation job. A cancelled context skips the document.
func (j *ValidateJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &ValidateResult{
			Index:      j.Index,
			FileResult: validate.FileResult{Path: j.Path, Kind: j.Kind, Err: err},
		}
	}
	return &ValidateResult{
		Index:      j.Index,
		FileResult: j.Validator.ValidateFile(j.Path, j.Kind),
	}
}

// ValidateResult represents the result of a validation job
type ValidateResult struct {
	Index int
	validate.FileResult
}

// GetError returns the document error, or ErrInvalidRecords when records failed
func (r *ValidateResult) GetError() error {
	return r.FileResult.Error()
}

// Summary totals a batch run
type Summary struct {
	Files          int `json:"files"`
	FailedFiles    int `json:"failed_files"`
	Records        int `json:"records"`
	ValidRecords   int `json:"valid_records"`
	InvalidRecords int `json:"invalid_records"`
}

// OK reports whether every file was read and every record is valid
func (s Summary) OK() bool {
	return s.FailedFiles == 0 && s.InvalidRecords == 0
}

// Summarize totals the results of a batch
func Summarize(results []validate.FileResult) Summary {
	s := Summary{Files: len(results)}
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			s.FailedFiles++
			continue
		}
		s.Records += r.Total
		s.ValidRecords += r.Valid
		s.InvalidRecords += r.Invalid
	}
	return s
}

// BatchProcessor validates multiple documents concurrently
type BatchProcessor struct {
	validator   Validator
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(validator Validator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		validator:   validator,
		concurrency: concurrency,
	}
}

// ProcessPaths validates documents concurrently. Results are returned in input order.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string, kind codec.Kind) []validate.FileResult {
	if len(paths) == 0 {
		return []validate.FileResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	out := make([]validate.FileResult, len(paths))
	submitted := make([]bool, len(paths))

	for i, path := range paths {
		submitted[i] = pool.Submit(&ValidateJob{
			Index:     i,
			Path:      path,
			Kind:      kind,
			Validator: b.validator,
		})
	}

	for _, result := range pool.Wait() {
		vr := result.(*ValidateResult)
		out[vr.Index] = vr.FileResult
	}

	// Jobs dropped by cancellation still get a slot
	for i, ok := range submitted {
		if !ok || out[i].Path == "" {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			out[i] = validate.FileResult{Path: paths[i], Kind: kind, Err: err}
		}
	}

	return out
}

// ProcessFile reads document paths from a list file and validates them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string, kind codec.Kind) ([]validate.FileResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessPaths(ctx, paths, kind), nil
}

// ReadPathsFromFile reads document paths from a file (one per line).
// Blank lines and # comments are skipped, duplicates dropped, and relative
// paths resolved against the list file's directory.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(filePath)

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		line = filepath.Clean(line)

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
