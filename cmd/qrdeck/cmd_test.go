package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/qrdeck/internal/common"
	"github.com/sadopc/qrdeck/internal/config"
	"github.com/sadopc/qrdeck/internal/core/history"
)

func testServices(t *testing.T) *services {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage = history.StorageMemory
	cfg.DataDir = t.TempDir()
	svc := openServices(cfg, nil)
	t.Cleanup(svc.close)
	return svc
}

func TestOpenServices_UnknownStorageDegrades(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage = "floppy"
	cfg.DataDir = t.TempDir()
	svc := openServices(cfg, nil)
	defer svc.close()

	if svc.store.Degraded() == nil {
		t.Fatal("expected degraded store")
	}
	if _, err := svc.store.Append("x", history.OriginGenerated); !errors.Is(err, common.ErrStorageUnavailable) {
		t.Fatalf("Append err = %v, want ErrStorageUnavailable", err)
	}
	if svc.store.Len() != 1 {
		t.Fatal("degraded store still keeps records in memory")
	}
}

func TestRunGenerate_PrintsAndSaves(t *testing.T) {
	svc := testServices(t)
	var out bytes.Buffer

	if err := runGenerate(&out, svc, "  hello  ", generateOptions{save: true}); err != nil {
		t.Fatalf("runGenerate: %v", err)
	}
	if out.Len() == 0 {
		t.Fatal("expected a terminal QR code")
	}
	recs := svc.store.List()
	if len(recs) != 1 || recs[0].Text != "hello" || recs[0].Origin != history.OriginGenerated {
		t.Fatalf("history = %#v", recs)
	}
}

func TestRunGenerate_NoSave(t *testing.T) {
	svc := testServices(t)
	var out bytes.Buffer
	if err := runGenerate(&out, svc, "hello", generateOptions{}); err != nil {
		t.Fatalf("runGenerate: %v", err)
	}
	if svc.store.Len() != 0 {
		t.Fatal("--no-save must not touch history")
	}
}

func TestRunGenerate_Blank(t *testing.T) {
	svc := testServices(t)
	for _, save := range []bool{true, false} {
		err := runGenerate(&bytes.Buffer{}, svc, "   ", generateOptions{save: save})
		if !errors.Is(err, common.ErrInvalidInput) {
			t.Fatalf("save=%v: err = %v, want ErrInvalidInput", save, err)
		}
	}
	if svc.store.Len() != 0 {
		t.Fatal("blank text must not be saved")
	}
}

func TestGenerateThenScan(t *testing.T) {
	svc := testServices(t)
	path := filepath.Join(t.TempDir(), "code.png")

	var out bytes.Buffer
	err := runGenerate(&out, svc, "https://example.com", generateOptions{out: path, size: 256, save: true})
	if err != nil {
		t.Fatalf("runGenerate: %v", err)
	}
	if !strings.Contains(out.String(), "Saved "+path) {
		t.Fatalf("output = %q", out.String())
	}

	var stdout, stderr bytes.Buffer
	if failed := runScan(&stdout, &stderr, svc.store, []string{path}); failed != 0 {
		t.Fatalf("failed = %d: %s", failed, stderr.String())
	}
	if got := strings.TrimSpace(stdout.String()); got != "https://example.com" {
		t.Fatalf("decoded %q", got)
	}

	recs := svc.store.List()
	if len(recs) != 2 || recs[0].Origin != history.OriginScanned {
		t.Fatalf("history = %#v", recs)
	}
}

func TestRunScan_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "notes.png")
	if err := os.WriteFile(notImage, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	failed := runScan(&stdout, &stderr, nil, []string{filepath.Join(dir, "missing.png"), notImage})
	if failed != 2 {
		t.Fatalf("failed = %d, want 2", failed)
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "missing.png") || !strings.Contains(stderr.String(), "notes.png") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestHistoryList(t *testing.T) {
	svc := testServices(t)
	now := time.Now()

	var out bytes.Buffer
	if err := historyList(&out, svc.review, "", now); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No history yet") {
		t.Fatalf("output = %q", out.String())
	}

	for _, s := range []string{"https://example.com", "tel:+123"} {
		if _, err := svc.store.Append(s, history.OriginScanned); err != nil {
			t.Fatal(err)
		}
	}

	out.Reset()
	if err := historyList(&out, svc.review, "", now); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "example.com") || !strings.Contains(out.String(), "tel:+123") {
		t.Fatalf("output = %q", out.String())
	}

	out.Reset()
	if err := historyList(&out, svc.review, "example", now); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "tel:+123") {
		t.Fatalf("search should filter: %q", out.String())
	}

	out.Reset()
	if err := historyList(&out, svc.review, "zzzz", now); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No matches") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestResolveRecord(t *testing.T) {
	svc := testServices(t)
	a, _ := svc.store.Append("a", history.OriginScanned)
	b, _ := svc.store.Append("b", history.OriginGenerated)

	got, err := resolveRecord(svc.review, a.ID)
	if err != nil || got.ID != a.ID {
		t.Fatalf("exact id: got %v, %v", got.ID, err)
	}

	// The tail of a v7 id is random, so the full id minus one rune is
	// still unique.
	got, err = resolveRecord(svc.review, b.ID[:len(b.ID)-1])
	if err != nil || got.ID != b.ID {
		t.Fatalf("prefix: got %v, %v", got.ID, err)
	}

	if _, err := resolveRecord(svc.review, a.ID[:4]); !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("ambiguous prefix: err = %v", err)
	}
	if _, err := resolveRecord(svc.review, "nope"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("unknown id: err = %v", err)
	}
	if _, err := resolveRecord(svc.review, ""); !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("empty id: err = %v", err)
	}
}

func TestHistoryRecall(t *testing.T) {
	svc := testServices(t)
	rec, _ := svc.store.Append("hello", history.OriginScanned)

	var out bytes.Buffer
	if err := historyRecall(&out, svc.review, rec.ID); err != nil {
		t.Fatalf("historyRecall: %v", err)
	}
	if !strings.HasSuffix(out.String(), "hello\n") {
		t.Fatalf("output = %q", out.String())
	}
	if svc.store.Len() != 1 {
		t.Fatal("recalling a listed text must not append")
	}
}

func TestHistoryDelete(t *testing.T) {
	svc := testServices(t)
	rec, _ := svc.store.Append("hello", history.OriginScanned)

	var out bytes.Buffer
	if err := historyDelete(&out, svc.review, rec.ID); err != nil {
		t.Fatal(err)
	}
	if svc.store.Len() != 0 {
		t.Fatal("expected record removed")
	}
	if err := historyDelete(&out, svc.review, rec.ID); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var prompt bytes.Buffer
		if got := confirm(strings.NewReader(tt.in), &prompt, "ok? "); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if prompt.String() != "ok? " {
			t.Errorf("prompt = %q", prompt.String())
		}
	}
}

func TestVersionString(t *testing.T) {
	if got := versionString(); !strings.HasPrefix(got, "qrdeck dev (none) built unknown") {
		t.Fatalf("versionString() = %q", got)
	}
}
