// Package review backs the history view: listing, deleting and clearing
// records, and handing a record back to the generator.
package review

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/sadopc/qrdeck/internal/core/generate"
	"github.com/sadopc/qrdeck/internal/core/history"
)

// Store is the part of the history store the consumer reads and edits.
type Store interface {
	List() []history.Record
	Get(id string) (history.Record, bool)
	Remove(id string) error
	Clear() error
}

// Recaller regenerates a recorded text.
type Recaller interface {
	Recall(text string) (generate.Result, error)
}

// Summary counts records by origin.
type Summary struct {
	Scanned   int
	Generated int
	Total     int
}

// Consumer is the history view's model of the log.
type Consumer struct {
	store    Store
	recaller Recaller
}

// NewConsumer creates a consumer. recaller may be nil when the caller
// passes records to the generator some other way.
func NewConsumer(store Store, recaller Recaller) *Consumer {
	return &Consumer{store: store, recaller: recaller}
}

// View returns the log newest first, as stored.
func (c *Consumer) View() []history.Record {
	return c.store.List()
}

// Get looks up a record by id.
func (c *Consumer) Get(id string) (history.Record, bool) {
	return c.store.Get(id)
}

// Delete removes one record and returns the log as it is afterwards. The
// list is returned even when persisting fails.
func (c *Consumer) Delete(id string) ([]history.Record, error) {
	err := c.store.Remove(id)
	return c.store.List(), err
}

// ClearAll empties the log.
func (c *Consumer) ClearAll() error {
	return c.store.Clear()
}

// RecallToGenerate hands the record's text to the generator.
func (c *Consumer) RecallToGenerate(rec history.Record) (generate.Result, error) {
	return c.recaller.Recall(rec.Text)
}

// Summary counts the current log by origin.
func (c *Consumer) Summary() Summary {
	return Summarize(c.View())
}

// Summarize counts records by origin.
func Summarize(records []history.Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Origin {
		case history.OriginScanned:
			s.Scanned++
		case history.OriginGenerated:
			s.Generated++
		}
	}
	s.Total = len(records)
	return s
}

// Search fuzzy-matches query against record text. Matches keep the log's
// newest-first order. An empty query returns the whole log.
func (c *Consumer) Search(query string) []history.Record {
	return Filter(c.View(), query)
}

// Filter is Search over an existing snapshot.
func Filter(records []history.Record, query string) []history.Record {
	query = strings.TrimSpace(query)
	if query == "" {
		return records
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}
	matches := fuzzy.Find(query, texts)
	sort.Slice(matches, func(i, j int) bool { return matches[i].Index < matches[j].Index })

	out := make([]history.Record, 0, len(matches))
	for _, m := range matches {
		out = append(out, records[m.Index])
	}
	return out
}
