// Package generate renders user text as a QR code and records it in the
// shared history.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sadopc/qrdeck/internal/common"
	"github.com/sadopc/qrdeck/internal/core/history"
	"github.com/sadopc/qrdeck/internal/logging"
	"github.com/sadopc/qrdeck/internal/render"
)

// Renderer turns text into a rendered artifact.
type Renderer interface {
	Render(text string) (*render.Artifact, error)
}

// Store is the part of the history store the producer uses.
type Store interface {
	Append(text string, origin history.Origin) (history.Record, error)
	FindByText(text string) (history.Record, bool)
}

// Result is the outcome of a successful generate or recall.
type Result struct {
	Artifact *render.Artifact
	Record   history.Record
	// Reused is true when Recall matched an existing record.
	Reused bool
}

// Producer handles the generator view's two entry points.
type Producer struct {
	renderer Renderer
	store    Store
	log      logging.Logger
}

// NewProducer wires a renderer to a store.
func NewProducer(renderer Renderer, store Store, log logging.Logger) *Producer {
	if log == nil {
		log = logging.Nop()
	}
	return &Producer{
		renderer: renderer,
		store:    store,
		log:      log.With("component", "generate"),
	}
}

// Generate renders the trimmed text and appends a generated record. A render
// failure appends nothing. A storage failure is returned together with a
// populated Result, since the in-memory history still changed.
func (p *Producer) Generate(text string) (Result, error) {
	trimmed, err := validate(text)
	if err != nil {
		return Result{}, err
	}

	art, err := p.render(trimmed)
	if err != nil {
		return Result{}, err
	}

	rec, err := p.store.Append(trimmed, history.OriginGenerated)
	res := Result{Artifact: art, Record: rec}
	if err != nil {
		if errors.Is(err, common.ErrStorageUnavailable) {
			return res, err
		}
		return Result{}, err
	}
	p.log.Debug(context.Background(), "generated", "id", rec.ID, "len", len(trimmed))
	return res, nil
}

// Recall reuses the most recent record whose text equals text exactly, or
// generates a new one when none is listed. Evicted records do not count.
// Only the miss path trims.
func (p *Producer) Recall(text string) (Result, error) {
	if _, err := validate(text); err != nil {
		return Result{}, err
	}

	rec, ok := p.store.FindByText(text)
	if !ok {
		return p.Generate(text)
	}

	art, err := p.render(rec.Text)
	if err != nil {
		return Result{}, err
	}
	p.log.Debug(context.Background(), "recalled", "id", rec.ID)
	return Result{Artifact: art, Record: rec, Reused: true}, nil
}

func (p *Producer) render(text string) (*render.Artifact, error) {
	art, err := p.renderer.Render(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	return art, nil
}

func validate(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("%w: text is empty", common.ErrInvalidInput)
	}
	return trimmed, nil
}
