// Package codec reads and writes record documents in JSON and YAML.
//
// A document is either an envelope naming its kind:
//
//	{"kind": "article", "records": [{...}, {...}]}
//
// or a bare record object or array, in which case the caller supplies the kind.
// YAML documents are converted to their JSON form before decoding, and YAML
// output is produced from the JSON form, so enums, identifiers, and
// timestamps look the same in both formats.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/newsanalyst/newsanalyst/internal/model"
)

// Codec errors
var (
	ErrUnknownKind   = errors.New("unknown record kind")
	ErrUnknownFormat = errors.New("unknown document format")
	ErrKindMismatch  = errors.New("document kind does not match requested kind")
	ErrEmptyDocument = errors.New("document is empty")
)

// Record is any model record that can normalize and check itself
type Record interface {
	Validate() error
}

// Kind names a record type
type Kind string

const (
	KindNewsSource     Kind = "news_source"
	KindArticle        Kind = "article"
	KindFactCheckClaim Kind = "fact_check_claim"
	KindSentiment      Kind = "sentiment"
	KindAnalysisResult Kind = "analysis_result"
)

// Kinds lists every supported record kind
var Kinds = []Kind{KindNewsSource, KindArticle, KindFactCheckClaim, KindSentiment, KindAnalysisResult}

// ParseKind accepts the kind value, ignoring case and surrounding space
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// New allocates an empty record of this kind
func (k Kind) New() (Record, error) {
	switch k {
	case KindNewsSource:
		return &model.NewsSource{}, nil
	case KindArticle:
		return &model.Article{}, nil
	case KindFactCheckClaim:
		return &model.FactCheckClaim{}, nil
	case KindSentiment:
		return &model.Sentiment{}, nil
	case KindAnalysisResult:
		return &model.AnalysisResult{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
}

// Format is a document encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Document is the envelope form of a record document
type Document struct {
	Kind    Kind              `json:"kind"`
	Records []json.RawMessage `json:"records"`
}

// NewDocument wraps records in an envelope of the given kind
func NewDocument(kind Kind, records ...any) (Document, error) {
	doc := Document{Kind: kind, Records: make([]json.RawMessage, 0, len(records))}
	for i, r := range records {
		raw, err := json.Marshal(r)
		if err != nil {
			return Document{}, fmt.Errorf("marshal record %d: %w", i, err)
		}
		doc.Records = append(doc.Records, raw)
	}
	return doc, nil
}

// RecordError ties a decode or validation failure to its position in the document
type RecordError struct {
	Index int   `json:"index"`
	Err   error `json:"-"`
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e RecordError) Unwrap() error { return e.Err }

// Validation returns the aggregated field errors when the failure was a validation failure
func (e RecordError) Validation() (*model.ValidationError, bool) {
	var verr *model.ValidationError
	if errors.As(e.Err, &verr) {
		return verr, true
	}
	return nil, false
}

// Batch is the outcome of decoding one document
type Batch struct {
	Kind    Kind
	Total   int
	Records []Record      // valid, normalized records in document order
	Indexes []int         // document position of each entry in Records
	Errors  []RecordError // failures in document order
}

// Valid returns the number of records that decoded and validated
func (b *Batch) Valid() int { return len(b.Records) }

// Invalid returns the number of records that failed
func (b *Batch) Invalid() int { return len(b.Errors) }

// OK reports whether every record in the document is valid
func (b *Batch) OK() bool { return len(b.Errors) == 0 }

// Decode parses a document and validates every record in it.
// kind may be empty when the document is an envelope. Record-level failures
// are collected in the batch; the returned error covers only failures that
// prevent reading the document at all.
func Decode(data []byte, format Format, kind Kind) (*Batch, error) {
	jsonData, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	docKind, raws, err := split(jsonData)
	if err != nil {
		return nil, err
	}

	switch {
	case kind == "" && docKind == "":
		return nil, fmt.Errorf("%w: document has no kind and none was given", ErrUnknownKind)
	case kind == "":
		kind = docKind
	case docKind != "" && docKind != kind:
		return nil, fmt.Errorf("%w: document is %q, expected %q", ErrKindMismatch, docKind, kind)
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}

	batch := &Batch{Kind: kind, Total: len(raws)}
	for i, raw := range raws {
		rec, err := decodeRecord(kind, raw)
		if err != nil {
			batch.Errors = append(batch.Errors, RecordError{Index: i, Err: err})
			continue
		}
		batch.Records = append(batch.Records, rec)
		batch.Indexes = append(batch.Indexes, i)
	}
	return batch, nil
}

func decodeRecord(kind Kind, raw json.RawMessage) (Record, error) {
	rec, err := kind.New()
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// split separates an envelope, a bare array, or a bare object into raw records
func split(data []byte) (Kind, []json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil, ErrEmptyDocument
	}

	switch trimmed[0] {
	case '[':
		var raws []json.RawMessage
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return "", nil, fmt.Errorf("decode record list: %w", err)
		}
		return "", raws, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return "", nil, fmt.Errorf("decode document: %w", err)
		}
		_, hasKind := fields["kind"]
		_, hasRecords := fields["records"]
		if !hasKind || !hasRecords {
			return "", []json.RawMessage{json.RawMessage(trimmed)}, nil
		}
		var doc Document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return "", nil, fmt.Errorf("decode envelope: %w", err)
		}
		kind, err := ParseKind(string(doc.Kind))
		if err != nil {
			return "", nil, err
		}
		return kind, doc.Records, nil
	default:
		return "", nil, fmt.Errorf("decode document: expected an object or an array")
	}
}

func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("convert yaml to json: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

// Encode writes v in the requested format
func Encode(w io.Writer, format Format, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	switch format {
	case FormatJSON:
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		return nil
	case FormatYAML:
		return writeYAML(w, data)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

// writeYAML re-reads the JSON form as a YAML node tree, which keeps field
// order, then drops the flow styling JSON carries
func writeYAML(w io.Writer, data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("convert json to yaml: %w", err)
	}
	blockStyle(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
