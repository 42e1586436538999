// Package validate checks record documents on disk.
package validate

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/newsanalyst/newsanalyst/internal/codec"
	"github.com/newsanalyst/newsanalyst/internal/logging"
)

// ErrInvalidRecords is reported when a document decoded but some of its records did not validate
var ErrInvalidRecords = errors.New("document contains invalid records")

// FileResult is the outcome of validating one document
type FileResult struct {
	Path    string              `json:"path"`
	Kind    codec.Kind          `json:"kind,omitempty"`
	Format  codec.Format        `json:"format,omitempty"`
	Total   int                 `json:"total"`
	Valid   int                 `json:"valid"`
	Invalid int                 `json:"invalid"`
	Records []codec.Record      `json:"-"`
	Errors  []codec.RecordError `json:"-"`
	Err     error               `json:"-"` // the document could not be read or decoded
}

// OK reports whether the document was read and every record is valid
func (r *FileResult) OK() bool {
	return r.Err == nil && r.Invalid == 0
}

// Error returns the document-level failure, or ErrInvalidRecords when only records failed
func (r *FileResult) Error() error {
	if r.Err != nil {
		return r.Err
	}
	if r.Invalid > 0 {
		return fmt.Errorf("%s: %w (%d of %d)", r.Path, ErrInvalidRecords, r.Invalid, r.Total)
	}
	return nil
}

// FileValidator reads, decodes, and validates record documents
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a validator. A nil logger discards output.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &FileValidator{logger: logger}
}

// ValidateFile validates the document at path. The format comes from the
// file extension; kind may be empty for envelope documents.
func (v *FileValidator) ValidateFile(path string, kind codec.Kind) FileResult {
	format, err := codec.FormatFromPath(path)
	if err != nil {
		return FileResult{Path: path, Kind: kind, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Kind: kind, Format: format, Err: fmt.Errorf("read %s: %w", path, err)}
	}

	return v.ValidateBytes(path, data, format, kind)
}

// ValidateBytes validates an in-memory document; name is used for reporting only
func (v *FileValidator) ValidateBytes(name string, data []byte, format codec.Format, kind codec.Kind) FileResult {
	result := FileResult{Path: name, Kind: kind, Format: format}

	batch, err := codec.Decode(data, format, kind)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", name, err)
		v.logger.Warn("document rejected", "path", name, "error", err)
		return result
	}

	result.Kind = batch.Kind
	result.Total = batch.Total
	result.Valid = batch.Valid()
	result.Invalid = batch.Invalid()
	result.Records = batch.Records
	result.Errors = batch.Errors

	for _, rerr := range batch.Errors {
		v.logger.Debug("record invalid", "path", name, "index", rerr.Index, "error", rerr.Err)
	}
	v.logger.Info("document validated", "path", name, "kind", batch.Kind, "valid", result.Valid, "invalid", result.Invalid)

	return result
}
