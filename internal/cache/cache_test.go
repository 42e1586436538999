package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/newsanalyst/newsanalyst/internal/config"
)

func TestKey(t *testing.T) {
	a := Key("analysis_result", []byte(`{"bias_score":0.5}`))
	b := Key("analysis_result", []byte(`{"bias_score":0.5}`))
	c := Key("analysis_result", []byte(`{"bias_score":0.6}`))
	d := Key("article", []byte(`{"bias_score":0.5}`))

	if a != b {
		t.Error("Expected identical payloads to share a key")
	}
	if a == c || a == d {
		t.Error("Expected different payloads or kinds to produce different keys")
	}
	if !strings.HasPrefix(a, Namespace+"analysis_result:") {
		t.Errorf("Expected namespaced key, got %s", a)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	value := []byte("payload")
	if err := c.Set("k", value, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value[0] = 'X' // stored copy must not change

	got, ok := c.Get("k")
	if !ok || string(got) != "payload" {
		t.Errorf("Expected payload, got %q (found=%v)", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}

	_ = c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("short", []byte("v"), time.Millisecond)

	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("short"); ok {
		t.Error("Expected expired entry to miss")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	key := Key("analysis_result", []byte("x"))

	if err := c.Set(key, []byte("stored"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := c.Get(key)
	if !ok || string(got) != "stored" {
		t.Errorf("Expected stored value, got %q (found=%v)", got, ok)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || strings.Contains(entries[0].Name(), ":") {
		t.Errorf("Expected one file without colons, got %v", entries)
	}

	if err := c.Delete(key); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if err := c.Delete(key); err != nil {
		t.Errorf("Expected deleting a missing key to succeed, got %v", err)
	}
}

func TestDiskCache_ExpiredAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	_ = c.Set("old", []byte("v"), time.Minute)

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("old"); ok {
		t.Error("Expected expired entry to miss")
	}
	if _, err := os.Stat(c.path("old")); !os.IsNotExist(err) {
		t.Error("Expected expired entry file to be removed")
	}

	if err := os.WriteFile(c.path("bad"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("Expected corrupt entry to miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(NewMemoryCache(time.Minute, time.Minute), NewDiskCache(dir, time.Hour))

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh stack over the same directory starts with a cold front layer
	front := NewMemoryCache(time.Minute, time.Minute)
	fresh := NewLayeredCache(front, NewDiskCache(dir, time.Hour))
	if got, ok := fresh.Get("k"); !ok || string(got) != "v" {
		t.Fatalf("Expected disk hit, got %q (found=%v)", got, ok)
	}
	if front.Len() != 1 {
		t.Error("Expected disk hit to be copied to the front layer")
	}

	if err := fresh.Clear(); err != nil {
		t.Errorf("Clear failed: %v", err)
	}
	if _, ok := fresh.Get("k"); ok {
		t.Error("Expected miss after clear")
	}
}

func TestNew(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	if _, ok := New(config.CacheSettings{Enabled: false}, dir).(Noop); !ok {
		t.Error("Expected Noop cache when disabled")
	}

	c := New(config.CacheSettings{Enabled: true, MemoryTTL: time.Minute, DiskTTL: time.Hour}, dir)
	if _, ok := c.(*LayeredCache); !ok {
		t.Fatalf("Expected *LayeredCache, got %T", c)
	}
}

func TestJSONHelpers(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	type payload struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}

	if err := SetJSON(c, "p", payload{Label: "center_neutral", Score: 0.5}, 0); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}

	var got payload
	if !GetJSON(c, "p", &got) {
		t.Fatal("Expected hit")
	}
	if got.Label != "center_neutral" || got.Score != 0.5 {
		t.Errorf("Unexpected value %+v", got)
	}

	_ = c.Set("garbage", []byte("{"), 0)
	if GetJSON(c, "garbage", &got) {
		t.Error("Expected undecodable entry to count as a miss")
	}
	if GetJSON(Noop{}, "p", &got) {
		t.Error("Expected Noop to always miss")
	}
}
