package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/qrdeck/internal/common"
	"github.com/sadopc/qrdeck/internal/render"
)

type fakeRunner struct {
	name string
	args []string
	err  error
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) error {
	f.name = name
	f.args = args
	return f.err
}

func testExporter(t *testing.T, opts Options) (*Exporter, *bytes.Buffer, *[]string) {
	t.Helper()
	var term bytes.Buffer
	opts.Terminal = &term
	e := New(opts, nil)

	var copied []string
	e.clipboardOK = func() bool { return true }
	e.writeClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	return e, &term, &copied
}

func TestCopy_UsesClipboard(t *testing.T) {
	e, term, copied := testExporter(t, Options{})

	method, err := e.Copy("hello")
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if method != MethodClipboard {
		t.Errorf("method = %q, want clipboard", method)
	}
	if len(*copied) != 1 || (*copied)[0] != "hello" {
		t.Errorf("copied = %v", *copied)
	}
	if term.Len() != 0 {
		t.Errorf("unexpected terminal output %q", term.String())
	}
}

func TestCopy_FallsBackToOSC52WhenUnsupported(t *testing.T) {
	e, term, copied := testExporter(t, Options{})
	e.clipboardOK = func() bool { return false }

	method, err := e.Copy("hello")
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if method != MethodOSC52 {
		t.Errorf("method = %q, want terminal", method)
	}
	if len(*copied) != 0 {
		t.Errorf("clipboard should not be used, got %v", *copied)
	}
	if !strings.Contains(term.String(), base64.StdEncoding.EncodeToString([]byte("hello"))) {
		t.Errorf("terminal output %q missing encoded text", term.String())
	}
}

func TestCopy_FallsBackToOSC52OnError(t *testing.T) {
	e, term, _ := testExporter(t, Options{})
	e.writeClipboard = func(string) error { return errors.New("xclip: not found") }

	method, err := e.Copy("x")
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if method != MethodOSC52 || term.Len() == 0 {
		t.Fatalf("expected osc52 fallback, got %q with %d bytes", method, term.Len())
	}
}

func TestDownload_WritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	e, _, _ := testExporter(t, Options{DownloadDir: dir, Size: 128})
	e.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	art, err := render.New("medium").Render("https://example.com")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	path, err := e.Download(art)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if want := filepath.Join(dir, "qr-code-20240501-123000.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Errorf("image is %dx%d, want 128x128", b.Dx(), b.Dy())
	}
}

func TestDownload_SameSecondGetsNewName(t *testing.T) {
	dir := t.TempDir()
	e, _, _ := testExporter(t, Options{DownloadDir: dir, Size: 64})
	e.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	first, err := render.New("medium").Render("first")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := render.New("medium").Render("second")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	p1, err := e.Download(first)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	p2, err := e.Download(second)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if want := filepath.Join(dir, "qr-code-20240501-123000-2.png"); p2 != want {
		t.Fatalf("second path = %q, want %q", p2, want)
	}

	a, err := os.ReadFile(p1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(p2)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("second download overwrote the first")
	}
}

func TestDownload_NilArtifact(t *testing.T) {
	e, _, _ := testExporter(t, Options{DownloadDir: t.TempDir()})
	if _, err := e.Download(nil); !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestShare_RunsCommand(t *testing.T) {
	e, _, copied := testExporter(t, Options{ShareCommand: "notify-send -a qrdeck"})
	runner := &fakeRunner{}
	e.run = runner.run

	method, err := e.Share(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Share: %v", err)
	}
	if method != MethodShare {
		t.Errorf("method = %q, want share", method)
	}
	if runner.name != "notify-send" {
		t.Errorf("ran %q, want notify-send", runner.name)
	}
	want := []string{"-a", "qrdeck", "hello"}
	if strings.Join(runner.args, "|") != strings.Join(want, "|") {
		t.Errorf("args = %v, want %v", runner.args, want)
	}
	if len(*copied) != 0 {
		t.Errorf("clipboard should not be used, got %v", *copied)
	}
}

func TestShare_UnsupportedFallsBackToCopy(t *testing.T) {
	e, _, copied := testExporter(t, Options{})
	if e.CanShare() {
		t.Fatal("no command configured, CanShare should be false")
	}

	method, err := e.Share(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Share: %v", err)
	}
	if method != MethodClipboard {
		t.Errorf("method = %q, want clipboard", method)
	}
	if len(*copied) != 1 {
		t.Errorf("expected copy fallback, got %v", *copied)
	}
}

func TestShare_CommandFailureFallsBackToCopy(t *testing.T) {
	e, _, copied := testExporter(t, Options{ShareCommand: "share-tool"})
	e.run = (&fakeRunner{err: errors.New("exit status 1")}).run

	method, err := e.Share(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Share: %v", err)
	}
	if method != MethodClipboard || len(*copied) != 1 {
		t.Fatalf("expected copy fallback, got %q %v", method, *copied)
	}
}
