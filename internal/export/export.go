// Package export sends a generated code out of the app: to the clipboard,
// to a PNG file or to an external share command. Nothing here touches the
// history store.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/sadopc/qrdeck/internal/common"
	"github.com/sadopc/qrdeck/internal/logging"
	"github.com/sadopc/qrdeck/internal/render"
)

// Method reports how an export reached its destination.
type Method string

const (
	MethodClipboard Method = "clipboard"
	MethodOSC52     Method = "terminal"
	MethodShare     Method = "share"
)

// Options configure an Exporter.
type Options struct {
	DownloadDir  string
	Size         int
	ShareCommand string
	// Terminal receives the OSC 52 sequence when no clipboard tool exists.
	Terminal io.Writer
}

// Exporter implements the generator's copy, download and share actions.
type Exporter struct {
	downloadDir string
	size        int
	share       []string
	terminal    io.Writer
	log         logging.Logger

	writeClipboard func(string) error
	clipboardOK    func() bool
	run            func(ctx context.Context, name string, args ...string) error
	now            func() time.Time
}

// New creates an Exporter.
func New(opts Options, log logging.Logger) *Exporter {
	if log == nil {
		log = logging.Nop()
	}
	if opts.Terminal == nil {
		opts.Terminal = os.Stderr
	}
	if opts.DownloadDir == "" {
		opts.DownloadDir = "."
	}
	if opts.Size <= 0 {
		opts.Size = render.DefaultSize
	}
	return &Exporter{
		downloadDir:    opts.DownloadDir,
		size:           opts.Size,
		share:          strings.Fields(opts.ShareCommand),
		terminal:       opts.Terminal,
		log:            log.With("component", "export"),
		writeClipboard: clipboard.WriteAll,
		clipboardOK:    func() bool { return !clipboard.Unsupported },
		run:            runCommand,
		now:            time.Now,
	}
}

// Copy puts text on the system clipboard, or emits an OSC 52 sequence for
// the terminal to handle when no clipboard tool is available.
func (e *Exporter) Copy(text string) (Method, error) {
	if e.clipboardOK() {
		err := e.writeClipboard(text)
		if err == nil {
			return MethodClipboard, nil
		}
		e.log.Debug(context.Background(), "clipboard write failed, trying osc52", "err", err)
	}

	if _, err := osc52.New(text).WriteTo(e.terminal); err != nil {
		return MethodOSC52, fmt.Errorf("copying to clipboard: %w", err)
	}
	return MethodOSC52, nil
}

// Download writes the artifact as a PNG into the download directory and
// returns the file path.
func (e *Exporter) Download(art *render.Artifact) (string, error) {
	if art == nil {
		return "", fmt.Errorf("%w: nothing to download", common.ErrInvalidInput)
	}
	data, err := art.PNG(e.size)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating download dir: %w", err)
	}

	stamp := e.now().Format("20060102-150405")
	for n := 1; n <= maxDownloadSuffix; n++ {
		name := fmt.Sprintf("qr-code-%s.png", stamp)
		if n > 1 {
			name = fmt.Sprintf("qr-code-%s-%d.png", stamp, n)
		}
		path := filepath.Join(e.downloadDir, name)
		err := writeNew(path, data)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("writing %s: %w", name, err)
		}
		e.log.Info(context.Background(), "downloaded", "path", path)
		return path, nil
	}
	return "", fmt.Errorf("writing qr-code-%s.png: too many downloads this second", stamp)
}

// maxDownloadSuffix bounds the -N suffixes tried for one timestamp.
const maxDownloadSuffix = 100

// writeNew writes data to path, failing with fs.ErrExist if it is taken.
func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Share passes text to the configured share command. Without one, or when
// the command fails, it falls back to Copy.
func (e *Exporter) Share(ctx context.Context, text string) (Method, error) {
	err := e.runShare(ctx, text)
	if err == nil {
		return MethodShare, nil
	}
	if !errors.Is(err, common.ErrShareUnsupported) {
		e.log.Warn(ctx, "share command failed", "err", err)
	}
	return e.Copy(text)
}

// CanShare reports whether a share command is configured.
func (e *Exporter) CanShare() bool {
	return len(e.share) > 0
}

func (e *Exporter) runShare(ctx context.Context, text string) error {
	if !e.CanShare() {
		return common.ErrShareUnsupported
	}
	args := append(append([]string{}, e.share[1:]...), text)
	if err := e.run(ctx, e.share[0], args...); err != nil {
		return fmt.Errorf("running %s: %w", e.share[0], err)
	}
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}
