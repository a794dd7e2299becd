package state

import "github.com/sadopc/qrdeck/internal/core/history"

// View identifies one of the three top-level screens.
type View int

const (
	ViewScanner View = iota
	ViewGenerator
	ViewHistory
)

// Views lists the screens in navigation order.
var Views = []View{ViewScanner, ViewGenerator, ViewHistory}

func (v View) String() string {
	switch v {
	case ViewScanner:
		return "Scanner"
	case ViewGenerator:
		return "Generator"
	case ViewHistory:
		return "History"
	default:
		return "Unknown"
	}
}

// Preset is text handed from one view to the generator. It is consumed at
// most once.
type Preset struct {
	text string
	set  bool
}

// Set stores text for the next Take, replacing any pending value.
func (p *Preset) Set(text string) {
	p.text = text
	p.set = true
}

// Take returns the pending text and clears it.
func (p *Preset) Take() (string, bool) {
	if !p.set {
		return "", false
	}
	text := p.text
	p.text, p.set = "", false
	return text, true
}

// Pending reports whether a value is waiting.
func (p *Preset) Pending() bool {
	return p.set
}

// Store holds the UI state shared across views.
type Store struct {
	ActiveView  View
	Preset      Preset
	LastScanned *history.Record
}

// NewStore creates a state store on the scanner view.
func NewStore() *Store {
	return &Store{ActiveView: ViewScanner}
}

// SetView switches the active view and returns the one that was active.
func (s *Store) SetView(v View) View {
	prev := s.ActiveView
	s.ActiveView = v
	return prev
}

// NextView switches to the next view, wrapping around.
func (s *Store) NextView() View {
	return s.SetView(Views[(s.index()+1)%len(Views)])
}

// PrevView switches to the previous view, wrapping around.
func (s *Store) PrevView() View {
	return s.SetView(Views[(s.index()-1+len(Views))%len(Views)])
}

// RecordScan remembers the latest scanned record for the scanner view.
func (s *Store) RecordScan(rec history.Record) {
	s.LastScanned = &rec
}

func (s *Store) index() int {
	for i, v := range Views {
		if v == s.ActiveView {
			return i
		}
	}
	return 0
}
