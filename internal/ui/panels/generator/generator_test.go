package generator

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/qrdeck/internal/render"
	"github.com/sadopc/qrdeck/internal/ui/msgs"
	"github.com/sadopc/qrdeck/internal/ui/theme"
)

func newGeneratorModelForTest() Model {
	th := theme.Default()
	m := New(th, theme.NewStyles(th))
	m.SetSize(120, 50)
	m.SetFocused(true)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func TestGenerator_EditAndGenerate(t *testing.T) {
	m := newGeneratorModelForTest()

	m, cmd := m.Update(keyMsg("i"))
	if !m.Editing() {
		t.Fatal("i should focus the input")
	}
	if cmd == nil {
		t.Fatal("expected focus and mode commands")
	}

	m, _ = m.Update(keyMsg("hello"))
	if got := m.Value(); got != "hello" {
		t.Fatalf("value = %q, want hello", got)
	}

	// Plain letters are text while editing.
	m, _ = m.Update(keyMsg("c"))
	if got := m.Value(); got != "helloc" {
		t.Fatalf("value = %q, want helloc", got)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	gen, ok := cmd().(msgs.GenerateMsg)
	if !ok || gen.Text != "helloc" {
		t.Fatalf("msg = %#v, want GenerateMsg{helloc}", gen)
	}

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Editing() {
		t.Fatal("esc should leave the input")
	}
	mode, ok := cmd().(msgs.SetModeMsg)
	if !ok || mode.Mode != msgs.ModeNormal {
		t.Fatalf("msg = %#v, want SetModeMsg{Normal}", mode)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	gen, ok = cmd().(msgs.GenerateMsg)
	if !ok || gen.Text != "helloc" {
		t.Fatalf("enter msg = %#v", gen)
	}
}

func TestGenerator_TemplateKeys(t *testing.T) {
	m := newGeneratorModelForTest()

	_, cmd := m.Update(altKey('3'))
	if cmd == nil {
		t.Fatal("expected template command")
	}
	fill, ok := cmd().(msgs.FillTemplateMsg)
	if !ok || fill.Payload != "tel:+1234567890" {
		t.Fatalf("msg = %#v, want phone template", fill)
	}

	m, _ = m.Update(fill)
	if got := m.Value(); got != "tel:+1234567890" {
		t.Fatalf("value = %q after fill", got)
	}

	if _, cmd := m.Update(altKey('9')); cmd != nil {
		t.Fatal("unknown template number should do nothing")
	}

	m, _ = m.Update(keyMsg("i"))
	_, cmd = m.Update(altKey('1'))
	if fill, ok := cmd().(msgs.FillTemplateMsg); !ok || fill.Payload != "https://example.com" {
		t.Fatalf("templates should work while editing, got %#v", fill)
	}
}

func TestGenerator_ActionsNeedArtifact(t *testing.T) {
	m := newGeneratorModelForTest()
	for _, k := range []string{"c", "d", "S"} {
		if _, cmd := m.Update(keyMsg(k)); cmd != nil {
			t.Fatalf("%s without a code should do nothing", k)
		}
	}

	art, err := render.New("medium").Render("https://example.com")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	m.SetArtifact(art, false)

	_, cmd := m.Update(keyMsg("c"))
	if cp, ok := cmd().(msgs.CopyMsg); !ok || cp.Text != "https://example.com" {
		t.Fatalf("copy msg = %#v", cp)
	}
	_, cmd = m.Update(keyMsg("d"))
	if _, ok := cmd().(msgs.DownloadMsg); !ok {
		t.Fatal("expected DownloadMsg")
	}
	_, cmd = m.Update(keyMsg("S"))
	if _, ok := cmd().(msgs.ShareMsg); !ok {
		t.Fatal("expected ShareMsg")
	}

	m, _ = m.Update(keyMsg("X"))
	if m.Artifact() != nil || m.Value() != "" {
		t.Fatal("X should clear input and code")
	}
}

func TestGenerator_ViewShowsCode(t *testing.T) {
	m := newGeneratorModelForTest()
	if v := m.View(); !strings.Contains(v, "Your QR code will appear here") {
		t.Fatalf("placeholder missing:\n%s", v)
	}
	if v := m.View(); !strings.Contains(v, "WiFi Network") {
		t.Fatalf("templates missing:\n%s", v)
	}

	art, err := render.New("medium").Render("hi")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	m.SetArtifact(art, true)
	v := m.View()
	if !strings.Contains(v, "from history") {
		t.Fatalf("reused marker missing:\n%s", v)
	}
	if !strings.Contains(v, "█") && !strings.Contains(v, "▀") && !strings.Contains(v, "▄") {
		t.Fatalf("code not drawn:\n%s", v)
	}
}

func TestGenerator_SmallTerminalAsksToEnlarge(t *testing.T) {
	m := newGeneratorModelForTest()
	m.SetSize(100, 14)

	art, err := render.New("medium").Render("hi")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	m.SetArtifact(art, false)
	if v := m.View(); !strings.Contains(v, "Enlarge") {
		t.Fatalf("expected enlarge hint:\n%s", v)
	}
}

func TestGenerator_BlurLeavesEditing(t *testing.T) {
	m := newGeneratorModelForTest()
	m, _ = m.Update(keyMsg("i"))
	m.SetFocused(false)
	if m.Editing() {
		t.Fatal("losing focus should leave the input")
	}
}
