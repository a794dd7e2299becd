package history

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	hist "github.com/sadopc/qrdeck/internal/core/history"
	"github.com/sadopc/qrdeck/internal/core/state"
	"github.com/sadopc/qrdeck/internal/ui/msgs"
	"github.com/sadopc/qrdeck/internal/ui/theme"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newHistoryModelForTest() Model {
	th := theme.Default()
	m := New(th, theme.NewStyles(th))
	m.SetSize(100, 20)
	m.SetFocused(true)
	m.now = func() time.Time { return testNow }
	return m
}

func testRecords() []hist.Record {
	return []hist.Record{
		{ID: "3", Text: "https://example.com", Origin: hist.OriginGenerated, CreatedAt: testNow.Add(-time.Minute)},
		{ID: "2", Text: "tel:+1234567890", Origin: hist.OriginScanned, CreatedAt: testNow.Add(-time.Hour)},
		{ID: "1", Text: "https://example.org/a", Origin: hist.OriginScanned, CreatedAt: testNow.Add(-48 * time.Hour)},
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHistory_EmptyState(t *testing.T) {
	m := newHistoryModelForTest()
	view := m.View()
	if !strings.Contains(view, "No history yet") {
		t.Fatalf("empty view missing placeholder:\n%s", view)
	}
	if !strings.Contains(view, "0 scanned · 0 generated") {
		t.Fatalf("empty view missing counts:\n%s", view)
	}

	_, cmd := m.Update(keyMsg("s"))
	if cmd == nil {
		t.Fatal("expected switch command from empty state")
	}
	sw, ok := cmd().(msgs.SwitchViewMsg)
	if !ok || sw.View != state.ViewScanner {
		t.Fatalf("msg = %#v, want SwitchViewMsg{Scanner}", sw)
	}

	_, cmd = m.Update(keyMsg("n"))
	sw, ok = cmd().(msgs.SwitchViewMsg)
	if !ok || sw.View != state.ViewGenerator {
		t.Fatalf("msg = %#v, want SwitchViewMsg{Generator}", sw)
	}

	if _, cmd := m.Update(keyMsg("d")); cmd != nil {
		t.Fatal("delete on empty list should do nothing")
	}
}

func TestHistory_ViewShowsRows(t *testing.T) {
	m := newHistoryModelForTest()
	m.SetRecords(testRecords())

	view := m.View()
	for _, want := range []string{
		"2 scanned · 1 generated",
		"https://example.com",
		"Generated",
		"Scanned",
		"1 minute ago",
		"2 days ago",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestHistory_LongTextIsEllipsized(t *testing.T) {
	m := newHistoryModelForTest()
	long := strings.Repeat("x", 80)
	m.SetRecords([]hist.Record{{ID: "1", Text: long, Origin: hist.OriginScanned, CreatedAt: testNow}})

	view := m.View()
	if strings.Contains(view, long) {
		t.Fatal("full text should not be shown")
	}
	if !strings.Contains(view, strings.Repeat("x", 50)+"...") {
		t.Fatalf("view missing ellipsized text:\n%s", view)
	}
}

func TestHistory_NavigationAndActions(t *testing.T) {
	m := newHistoryModelForTest()
	m.SetRecords(testRecords())

	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("j"))
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 (clamped)", m.cursor)
	}
	m, _ = m.Update(keyMsg("g"))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0 after g", m.cursor)
	}
	m, _ = m.Update(keyMsg("G"))
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 after G", m.cursor)
	}
	m, _ = m.Update(keyMsg("k"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	recall, ok := cmd().(msgs.RecallMsg)
	if !ok || recall.Record.ID != "2" {
		t.Fatalf("msg = %#v, want RecallMsg for id 2", recall)
	}

	_, cmd = m.Update(keyMsg("c"))
	cp, ok := cmd().(msgs.CopyMsg)
	if !ok || cp.Text != "tel:+1234567890" {
		t.Fatalf("msg = %#v, want CopyMsg", cp)
	}

	_, cmd = m.Update(keyMsg("d"))
	del, ok := cmd().(msgs.DeleteRecordMsg)
	if !ok || del.ID != "2" {
		t.Fatalf("msg = %#v, want DeleteRecordMsg{2}", del)
	}

	_, cmd = m.Update(keyMsg("C"))
	if _, ok := cmd().(msgs.ClearHistoryMsg); !ok {
		t.Fatal("expected ClearHistoryMsg")
	}
}

func TestHistory_FilterNarrowsAndEscClears(t *testing.T) {
	m := newHistoryModelForTest()
	m.SetRecords(testRecords())

	m, cmd := m.Update(keyMsg("/"))
	if !m.Filtering() {
		t.Fatal("expected filtering mode")
	}
	if cmd == nil {
		t.Fatal("expected blink and mode commands")
	}

	for _, r := range "+123" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if len(m.filtered) != 1 || m.filtered[0].ID != "2" {
		t.Fatalf("filtered = %#v, want only id 2", m.filtered)
	}

	// j is typed into the query while filtering.
	m, _ = m.Update(keyMsg("j"))
	if got := m.filterInput.Value(); got != "+123j" {
		t.Fatalf("query = %q, want +123j", got)
	}

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Filtering() {
		t.Fatal("esc should leave filtering")
	}
	if len(m.filtered) != 3 {
		t.Fatalf("filtered len = %d, want 3 after esc", len(m.filtered))
	}
	mode, ok := cmd().(msgs.SetModeMsg)
	if !ok || mode.Mode != msgs.ModeNormal {
		t.Fatalf("msg = %#v, want SetModeMsg{Normal}", mode)
	}
}

func TestHistory_FilterEnterKeepsQuery(t *testing.T) {
	m := newHistoryModelForTest()
	m.SetRecords(testRecords())

	m, _ = m.Update(keyMsg("/"))
	m, _ = m.Update(keyMsg("example"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Filtering() {
		t.Fatal("enter should leave filtering")
	}
	if len(m.filtered) != 2 {
		t.Fatalf("filtered len = %d, want 2", len(m.filtered))
	}
	sel, ok := m.Selected()
	if !ok || sel.ID != "3" {
		t.Fatalf("selected = %#v, want id 3", sel)
	}
}

func TestHistory_HistoryChangedClampsCursor(t *testing.T) {
	m := newHistoryModelForTest()
	m.SetRecords(testRecords())
	m, _ = m.Update(keyMsg("G"))

	m, _ = m.Update(msgs.HistoryChangedMsg{Records: testRecords()[:1]})
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
	if len(m.Records()) != 1 {
		t.Fatalf("records = %d, want 1", len(m.Records()))
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		cursor, total, height int
		start, end            int
	}{
		{0, 3, 10, 0, 3},
		{0, 20, 5, 0, 5},
		{10, 20, 5, 8, 13},
		{19, 20, 5, 15, 20},
	}
	for _, tt := range tests {
		start, end := window(tt.cursor, tt.total, tt.height)
		if start != tt.start || end != tt.end {
			t.Fatalf("window(%d, %d, %d) = %d, %d; want %d, %d",
				tt.cursor, tt.total, tt.height, start, end, tt.start, tt.end)
		}
	}
}
