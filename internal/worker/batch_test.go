package worker

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/newsanalyst/newsanalyst/internal/codec"
	"github.com/newsanalyst/newsanalyst/internal/validate"
)

// MockValidator implements Validator
type MockValidator struct {
	Invalid map[string]bool
	Missing map[string]bool
}

func (m *MockValidator) ValidateFile(path string, kind codec.Kind) validate.FileResult {
	time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond) // Shuffle completion order
	if m.Missing[path] {
		return validate.FileResult{Path: path, Kind: kind, Err: os.ErrNotExist}
	}
	if m.Invalid[path] {
		return validate.FileResult{Path: path, Kind: kind, Total: 2, Valid: 1, Invalid: 1}
	}
	return validate.FileResult{Path: path, Kind: kind, Total: 2, Valid: 2}
}

func TestBatchProcessor_ProcessPaths_KeepsInputOrder(t *testing.T) {
	processor := NewBatchProcessor(&MockValidator{}, 4)

	var paths []string
	for i := 0; i < 40; i++ {
		paths = append(paths, filepath.Join("docs", string(rune('a'+i%26))+string(rune('0'+i/26))+".json"))
	}

	results := processor.ProcessPaths(context.Background(), paths, codec.KindArticle)

	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}
	for i, res := range results {
		if res.Path != paths[i] {
			t.Errorf("result %d: expected %s, got %s", i, paths[i], res.Path)
		}
		if !res.OK() {
			t.Errorf("unexpected failure for %s: %v", res.Path, res.Error())
		}
	}
}

func TestBatchProcessor_ProcessPaths_Failures(t *testing.T) {
	validator := &MockValidator{
		Invalid: map[string]bool{"b.json": true},
		Missing: map[string]bool{"c.json": true},
	}
	processor := NewBatchProcessor(validator, 2)

	results := processor.ProcessPaths(context.Background(), []string{"a.json", "b.json", "c.json"}, codec.KindArticle)

	if !results[0].OK() {
		t.Error("expected a.json to pass")
	}
	if !errors.Is(results[1].Error(), validate.ErrInvalidRecords) {
		t.Errorf("expected invalid records for b.json, got %v", results[1].Error())
	}
	if !errors.Is(results[2].Error(), os.ErrNotExist) {
		t.Errorf("expected not-exist for c.json, got %v", results[2].Error())
	}

	summary := Summarize(results)
	want := Summary{Files: 3, FailedFiles: 1, Records: 4, ValidRecords: 3, InvalidRecords: 1}
	if summary != want {
		t.Errorf("expected %+v, got %+v", want, summary)
	}
	if summary.OK() {
		t.Error("expected summary to report failure")
	}
}

func TestBatchProcessor_ProcessPaths_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := NewBatchProcessor(&MockValidator{}, 2)
	results := processor.ProcessPaths(ctx, []string{"a.json", "b.json", "c.json"}, codec.KindArticle)

	if len(results) != 3 {
		t.Fatalf("expected a slot per path, got %d", len(results))
	}
	for i, res := range results {
		if res.Path == "" {
			t.Errorf("result %d has no path", i)
		}
		if !errors.Is(res.Err, context.Canceled) {
			t.Errorf("expected context.Canceled for %s, got %v", res.Path, res.Err)
		}
	}
}

func TestBatchProcessor_ProcessPaths_Empty(t *testing.T) {
	processor := NewBatchProcessor(&MockValidator{}, 2)
	if results := processor.ProcessPaths(context.Background(), nil, ""); len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestValidateResult_GetError(t *testing.T) {
	ok := &ValidateResult{FileResult: validate.FileResult{Path: "a.json", Total: 1, Valid: 1}}
	if ok.GetError() != nil {
		t.Errorf("expected no error, got %v", ok.GetError())
	}

	bad := &ValidateResult{FileResult: validate.FileResult{Path: "b.json", Total: 1, Invalid: 1}}
	if !errors.Is(bad.GetError(), validate.ErrInvalidRecords) {
		t.Errorf("expected ErrInvalidRecords, got %v", bad.GetError())
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "docs.txt")
	content := `# documents to check
articles.json

sources.yaml
# duplicate below
./articles.json
/abs/claims.json
`
	if err := os.WriteFile(list, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := ReadPathsFromFile(list)
	if err != nil {
		t.Fatalf("ReadPathsFromFile failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "articles.json"),
		filepath.Join(dir, "sources.yaml"),
		filepath.Clean("/abs/claims.json"),
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("path %d: expected %s, got %s", i, want[i], paths[i])
		}
	}
}

func TestReadPathsFromFile_NonExistent(t *testing.T) {
	if _, err := ReadPathsFromFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "claims.json")
	if err := os.WriteFile(doc, []byte(`[{"claim_text": "Turnout reached 70 percent nationwide."}]`), 0644); err != nil {
		t.Fatal(err)
	}
	list := filepath.Join(dir, "list.txt")
	if err := os.WriteFile(list, []byte("claims.json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	processor := NewBatchProcessor(validate.NewFileValidator(nil), 2)
	results, err := processor.ProcessFile(context.Background(), list, codec.KindFactCheckClaim)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 1 || !results[0].OK() || results[0].Valid != 1 {
		t.Errorf("expected one valid document, got %+v", results)
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&MockValidator{}, 2)
	if _, err := processor.ProcessFile(context.Background(), "/nonexistent/list.txt", ""); err == nil {
		t.Error("expected error for non-existent list file")
	}
}
