// Package camera provides the scanner's decode source. FrameCamera treats a
// directory as the video feed: every new PNG or JPEG dropped into it is a
// frame, and frames holding a readable code become decode events.
package camera

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/sadopc/qrdeck/internal/common"
	"github.com/sadopc/qrdeck/internal/core/scan"
	"github.com/sadopc/qrdeck/internal/logging"
)

// DefaultPollInterval is how often the frames directory is checked.
const DefaultPollInterval = 250 * time.Millisecond

// FrameCamera implements scan.Camera over a directory of image frames.
type FrameCamera struct {
	dir  string
	poll time.Duration
	log  logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

var _ scan.Camera = (*FrameCamera)(nil)

// NewFrameCamera watches dir for frames every poll interval.
func NewFrameCamera(dir string, poll time.Duration, log logging.Logger) *FrameCamera {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	if log == nil {
		log = logging.Nop()
	}
	return &FrameCamera{
		dir:  dir,
		poll: poll,
		log:  log.With("component", "camera", "dir", dir),
	}
}

// HasCamera reports whether the frames directory exists.
func (c *FrameCamera) HasCamera() bool {
	if c.dir == "" {
		return false
	}
	info, err := os.Stat(c.dir)
	return err == nil && info.IsDir()
}

// Start begins watching for frames created after this call. Decode events
// are limited to opts.MaxScansPerSecond; frames over the limit are dropped.
func (c *FrameCamera) Start(ctx context.Context, onDecode func(string), opts scan.Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return fmt.Errorf("camera already started")
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("opening frames dir: %w", err)
	}
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		if key, ok := frameKey(e); ok {
			seen[e.Name()] = key
		}
	}

	perSecond := opts.MaxScansPerSecond
	if perSecond <= 0 {
		perSecond = scan.DefaultMaxScansPerSecond
	}
	limiter := rate.NewLimiter(rate.Limit(perSecond), 1)

	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.run(runCtx, c.done, seen, limiter, onDecode)
	return nil
}

// Stop ends the watch loop and waits for it to exit. No decode events are
// delivered after Stop returns.
func (c *FrameCamera) Stop() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

// SetIllumination always fails: a directory has no torch.
func (c *FrameCamera) SetIllumination(bool) error {
	return common.ErrIlluminationUnsupported
}

func (c *FrameCamera) run(ctx context.Context, done chan struct{}, seen map[string]string, limiter *rate.Limiter, onDecode func(string)) {
	defer close(done)

	decoder := NewDecoder()
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		for _, name := range c.newFrames(seen) {
			if ctx.Err() != nil {
				return
			}
			text, err := decoder.DecodeFile(filepath.Join(c.dir, name))
			if err != nil {
				c.log.Debug(ctx, "frame skipped", "frame", name, "err", err)
				continue
			}
			if !limiter.Allow() {
				c.log.Debug(ctx, "frame rate limited", "frame", name)
				continue
			}
			onDecode(text)
		}
	}
}

// newFrames returns image files that appeared or changed since the last
// call, in name order, and records them as seen.
func (c *FrameCamera) newFrames(seen map[string]string) []string {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		c.log.Warn(context.Background(), "reading frames dir", "err", err)
		return nil
	}

	var names []string
	for _, e := range entries {
		key, ok := frameKey(e)
		if !ok || seen[e.Name()] == key {
			continue
		}
		seen[e.Name()] = key
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// frameKey identifies one version of an image file so that a frame still
// being written is picked up again once it is complete.
func frameKey(e os.DirEntry) (string, bool) {
	if e.IsDir() || !isImage(e.Name()) {
		return "", false
	}
	info, err := e.Info()
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%d/%d", info.Size(), info.ModTime().UnixNano()), true
}

func isImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
