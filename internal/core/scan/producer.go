// Package scan turns camera decode events into scanned history records.
//
// The Producer is a small state machine (Idle, Starting, Active) around a
// Camera. Decode callbacks may arrive on any goroutine; each one is tied to
// the session that started the camera, and a callback whose session has
// been stopped is dropped without touching the store.
package scan

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sadopc/qrdeck/internal/common"
	"github.com/sadopc/qrdeck/internal/core/history"
	"github.com/sadopc/qrdeck/internal/logging"
)

// State is the producer's lifecycle state.
type State int

const (
	Idle State = iota
	Starting
	Active
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Starting:
		return "starting"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// DefaultMaxScansPerSecond caps decode events when Options leaves it unset.
const DefaultMaxScansPerSecond = 5

// Options are passed to the camera on start.
type Options struct {
	MaxScansPerSecond int
}

// Camera is the decode source. Start must not return before the device is
// acquired (or has failed). onDecode may be called from any goroutine
// until Stop returns.
type Camera interface {
	HasCamera() bool
	Start(ctx context.Context, onDecode func(text string), opts Options) error
	Stop() error
	SetIllumination(on bool) error
}

// Appender is the part of the history store the producer writes to.
type Appender interface {
	Append(text string, origin history.Origin) (history.Record, error)
}

// Event reports the outcome of one accepted decode.
type Event struct {
	Record history.Record
	Err    error
}

// Producer owns the camera for the scanner view.
type Producer struct {
	// opMu serializes Start, Stop and ToggleIllumination.
	opMu sync.Mutex
	// mu guards the fields below and is held while a decode is appended.
	mu sync.Mutex

	cam   Camera
	store Appender
	opts  Options
	log   logging.Logger

	onEvent func(Event)

	state       State
	illuminated bool
	session     uint64
	acquired    bool
	cancel      context.CancelFunc
	discarded   int
}

// NewProducer creates an idle producer.
func NewProducer(cam Camera, store Appender, opts Options, log logging.Logger) *Producer {
	if opts.MaxScansPerSecond <= 0 {
		opts.MaxScansPerSecond = DefaultMaxScansPerSecond
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Producer{
		cam:   cam,
		store: store,
		opts:  opts,
		log:   log.With("component", "scan"),
	}
}

// OnEvent registers fn to receive every appended record or append error.
// fn runs with the producer's lock held and must not call back into it.
func (p *Producer) OnEvent(fn func(Event)) {
	p.mu.Lock()
	p.onEvent = fn
	p.mu.Unlock()
}

// State returns the current state.
func (p *Producer) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Illuminated reports whether the torch is on.
func (p *Producer) Illuminated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.illuminated
}

// Discarded returns how many decodes arrived after their session stopped.
func (p *Producer) Discarded() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.discarded
}

// Start acquires the camera. It is a no-op unless the producer is Idle.
// A missing or refused camera returns ErrCameraUnavailable and leaves the
// producer Idle; nothing is retried. ctx bounds the whole session: a ctx
// that is already done acquires nothing, one cancelled during Start aborts
// it, and once it is cancelled later decodes are dropped until Stop.
func (p *Producer) Start(ctx context.Context) error {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.mu.Lock()
	if p.state != Idle {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	if !p.cam.HasCamera() {
		return fmt.Errorf("%w: no camera found on this device", common.ErrCameraUnavailable)
	}

	p.mu.Lock()
	if ctx.Err() != nil {
		p.mu.Unlock()
		return fmt.Errorf("camera start aborted: %w", context.Canceled)
	}
	p.session++
	session := p.session
	p.state = Starting
	startCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	err := p.cam.Start(startCtx, p.decodeHandler(startCtx, session), p.opts)

	p.mu.Lock()
	aborted := session != p.session || startCtx.Err() != nil
	if err != nil || aborted {
		p.state = Idle
		p.cancel = nil
		cancel()
	} else {
		p.state = Active
		p.acquired = true
	}
	p.mu.Unlock()

	switch {
	case err != nil:
		p.log.Warn(ctx, "camera start failed", "err", err)
		return fmt.Errorf("%w: %v", common.ErrCameraUnavailable, err)
	case aborted:
		// Stop ran or ctx ended while the device was being acquired;
		// release it here since Stop saw nothing to release.
		if serr := p.cam.Stop(); serr != nil {
			p.log.Warn(ctx, "releasing camera after aborted start", "err", serr)
		}
		return fmt.Errorf("camera start aborted: %w", context.Canceled)
	}

	p.log.Info(ctx, "camera started", "session", session, "max_scans_per_second", p.opts.MaxScansPerSecond)
	return nil
}

// Stop releases the camera and returns to Idle. It is safe to call in any
// state and more than once. Decodes delivered after Stop begins are dropped.
func (p *Producer) Stop() error {
	p.mu.Lock()
	p.session++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.mu.Lock()
	acquired := p.acquired
	p.acquired = false
	p.state = Idle
	p.illuminated = false
	p.mu.Unlock()

	if !acquired {
		return nil
	}
	if err := p.cam.Stop(); err != nil {
		p.log.Warn(context.Background(), "camera stop failed", "err", err)
		return fmt.Errorf("stopping camera: %w", err)
	}
	p.log.Info(context.Background(), "camera stopped")
	return nil
}

// ToggleIllumination flips the torch and returns the new setting. The
// setting is unchanged when the device reports ErrIlluminationUnsupported.
func (p *Producer) ToggleIllumination() (bool, error) {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.mu.Lock()
	if p.state != Active {
		on := p.illuminated
		p.mu.Unlock()
		return on, common.ErrScannerInactive
	}
	target := !p.illuminated
	p.mu.Unlock()

	if err := p.cam.SetIllumination(target); err != nil {
		if errors.Is(err, common.ErrIlluminationUnsupported) {
			return !target, err
		}
		return !target, fmt.Errorf("toggling illumination: %w", err)
	}

	p.mu.Lock()
	p.illuminated = target
	p.mu.Unlock()
	return target, nil
}

func (p *Producer) decodeHandler(ctx context.Context, session uint64) func(string) {
	return func(text string) {
		p.mu.Lock()
		defer p.mu.Unlock()

		if session != p.session || p.state == Idle || ctx.Err() != nil {
			p.discarded++
			return
		}

		rec, err := p.store.Append(text, history.OriginScanned)
		if err != nil {
			p.log.Warn(context.Background(), "recording scan failed", "err", err)
		}
		if p.onEvent != nil {
			p.onEvent(Event{Record: rec, Err: err})
		}
	}
}
