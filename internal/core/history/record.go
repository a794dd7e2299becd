package history

import (
	"encoding/json"
	"strings"
	"time"
)

// Origin records how a Record entered the log.
type Origin string

const (
	OriginScanned   Origin = "scanned"
	OriginGenerated Origin = "generated"
)

// Valid reports whether o is a known origin.
func (o Origin) Valid() bool {
	return o == OriginScanned || o == OriginGenerated
}

// Label returns the display label for the origin.
func (o Origin) Label() string {
	switch o {
	case OriginScanned:
		return "Scanned"
	case OriginGenerated:
		return "Generated"
	default:
		return "Unknown"
	}
}

// Record is a single scan or generate event. Records are immutable once
// created; the only change a log makes to one is removing it.
type Record struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Origin    Origin    `json:"origin"`
}

// UnmarshalJSON accepts the current field names as well as the older
// "timestamp"/"type" names written by earlier clients.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var aux struct {
		plain
		Timestamp *time.Time `json:"timestamp"`
		Type      Origin     `json:"type"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Record(aux.plain)
	if r.CreatedAt.IsZero() && aux.Timestamp != nil {
		r.CreatedAt = *aux.Timestamp
	}
	if r.Origin == "" {
		r.Origin = aux.Type
	}
	return nil
}

func encodeLog(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	return json.Marshal(records)
}

// decodeLog parses a persisted log. Entries with blank text or an unknown
// origin are dropped and the result is capped at MaxEntries, keeping the
// persisted (newest-first) order.
func decodeLog(data []byte) ([]Record, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raw []Record
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]Record, 0, min(len(raw), MaxEntries))
	for _, r := range raw {
		if strings.TrimSpace(r.Text) == "" || !r.Origin.Valid() {
			continue
		}
		out = append(out, r)
		if len(out) == MaxEntries {
			break
		}
	}
	return out, nil
}
