package camera

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/qrdeck/internal/common"
	"github.com/sadopc/qrdeck/internal/core/history"
	"github.com/sadopc/qrdeck/internal/core/scan"
	"github.com/sadopc/qrdeck/internal/render"
)

type recorder struct {
	ch chan string
}

func (r *recorder) Append(text string, origin history.Origin) (history.Record, error) {
	r.ch <- text
	return history.Record{Text: text, Origin: origin}, nil
}

func writeQR(t *testing.T, dir, name, text string) string {
	t.Helper()
	art, err := render.New("medium").Render(text)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	png, err := art.PNG(256)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	// Write then rename so the watcher never sees a partial frame.
	tmp := filepath.Join(dir, name+".part")
	if err := os.WriteFile(tmp, png, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	return path
}

func TestDecoder_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeQR(t, dir, "code.png", "https://example.com")

	got, err := NewDecoder().DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if got != "https://example.com" {
		t.Errorf("decoded %q, want %q", got, "https://example.com")
	}
}

func TestDecoder_BlankImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	if _, err := NewDecoder().Decode(img); !errors.Is(err, ErrNoCode) {
		t.Fatalf("expected ErrNoCode, got %v", err)
	}
}

func TestDecoder_MissingFile(t *testing.T) {
	if _, err := NewDecoder().DecodeFile(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFrameCamera_HasCamera(t *testing.T) {
	dir := t.TempDir()
	if !NewFrameCamera(dir, 0, nil).HasCamera() {
		t.Error("existing dir should count as a camera")
	}
	if NewFrameCamera(filepath.Join(dir, "missing"), 0, nil).HasCamera() {
		t.Error("missing dir should not count as a camera")
	}
	if NewFrameCamera("", 0, nil).HasCamera() {
		t.Error("empty dir should not count as a camera")
	}
}

func TestFrameCamera_DecodesNewFrames(t *testing.T) {
	dir := t.TempDir()
	writeQR(t, dir, "old.png", "before start")

	cam := NewFrameCamera(dir, 10*time.Millisecond, nil)
	got := make(chan string, 4)
	if err := cam.Start(context.Background(), func(s string) { got <- s }, scan.Options{MaxScansPerSecond: 5}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer cam.Stop()

	writeQR(t, dir, "new.png", "after start")

	select {
	case text := <-got:
		if text != "after start" {
			t.Errorf("decoded %q, want %q", text, "after start")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for decode")
	}
}

func TestFrameCamera_NoEventsAfterStop(t *testing.T) {
	dir := t.TempDir()
	cam := NewFrameCamera(dir, 10*time.Millisecond, nil)
	got := make(chan string, 4)
	if err := cam.Start(context.Background(), func(s string) { got <- s }, scan.Options{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := cam.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	writeQR(t, dir, "late.png", "late")
	time.Sleep(50 * time.Millisecond)

	select {
	case text := <-got:
		t.Fatalf("unexpected decode after stop: %q", text)
	default:
	}
}

func TestFrameCamera_StartTwiceFails(t *testing.T) {
	cam := NewFrameCamera(t.TempDir(), 10*time.Millisecond, nil)
	if err := cam.Start(context.Background(), func(string) {}, scan.Options{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer cam.Stop()
	if err := cam.Start(context.Background(), func(string) {}, scan.Options{}); err == nil {
		t.Fatal("expected error on second start")
	}
}

func TestFrameCamera_StartMissingDir(t *testing.T) {
	cam := NewFrameCamera(filepath.Join(t.TempDir(), "gone"), 0, nil)
	if err := cam.Start(context.Background(), func(string) {}, scan.Options{}); err == nil {
		t.Fatal("expected error for missing dir")
	}
	if err := cam.Stop(); err != nil {
		t.Fatalf("Stop after failed start: %v", err)
	}
}

func TestFrameCamera_StartCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cam := NewFrameCamera(t.TempDir(), 0, nil)
	if err := cam.Start(ctx, func(string) {}, scan.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFrameCamera_IlluminationUnsupported(t *testing.T) {
	cam := NewFrameCamera(t.TempDir(), 0, nil)
	if err := cam.SetIllumination(true); !errors.Is(err, common.ErrIlluminationUnsupported) {
		t.Fatalf("expected ErrIlluminationUnsupported, got %v", err)
	}
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.png", true},
		{"b.JPG", true},
		{"c.jpeg", true},
		{"d.png.part", false},
		{"e.gif", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := isImage(tt.name); got != tt.want {
			t.Errorf("isImage(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFrameCamera_WithProducer(t *testing.T) {
	dir := t.TempDir()
	cam := NewFrameCamera(dir, 10*time.Millisecond, nil)
	rec := &recorder{ch: make(chan string, 4)}
	p := scan.NewProducer(cam, rec, scan.Options{}, nil)

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	writeQR(t, dir, "frame.png", "via producer")

	select {
	case text := <-rec.ch:
		if text != "via producer" {
			t.Errorf("appended %q", text)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for append")
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
