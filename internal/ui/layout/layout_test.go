package layout

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestCalculate_WideScreen(t *testing.T) {
	l := Calculate(160, 40, true)

	if !l.SideNav {
		t.Fatal("expected side navigation at 160 cols")
	}
	if l.Compact {
		t.Error("should not be compact at 160 cols")
	}
	if l.NavWidth < minNavWidth || l.NavWidth > maxNavWidth {
		t.Errorf("nav width %d outside [%d, %d]", l.NavWidth, minNavWidth, maxNavWidth)
	}
	if l.NavWidth+l.ContentWidth != 160 {
		t.Errorf("widths should sum to 160, got %d", l.NavWidth+l.ContentWidth)
	}
	if l.ContentHeight != 39 {
		t.Errorf("ContentHeight = %d, want 39", l.ContentHeight)
	}
}

func TestCalculate_NavHidden(t *testing.T) {
	l := Calculate(160, 40, false)

	if l.SideNav {
		t.Fatal("side nav should be hidden")
	}
	if l.ContentWidth != 160 {
		t.Errorf("ContentWidth = %d, want 160", l.ContentWidth)
	}
	if l.ContentHeight != 38 {
		t.Errorf("ContentHeight = %d, want 38 (tab bar + status bar)", l.ContentHeight)
	}
}

func TestCalculate_MediumScreenUsesTabs(t *testing.T) {
	l := Calculate(80, 30, true)

	if l.SideNav {
		t.Error("side nav should not fit at 80 cols")
	}
	if l.Compact {
		t.Error("should not be compact at 80 cols")
	}
}

func TestCalculate_NarrowScreen(t *testing.T) {
	l := Calculate(50, 20, true)

	if !l.Compact {
		t.Error("should be compact at 50 cols")
	}
	if l.SideNav {
		t.Error("side nav should be hidden at 50 cols")
	}
}

func TestCalculate_TinyTerminal(t *testing.T) {
	l := Calculate(0, 1, true)

	if l.ContentHeight < 1 || l.ContentWidth < 1 {
		t.Fatalf("content must stay at least 1x1, got %dx%d", l.ContentWidth, l.ContentHeight)
	}
}

func TestHandleResize(t *testing.T) {
	l := HandleResize(tea.WindowSizeMsg{Width: 120, Height: 30}, true)
	if l.Width != 120 || l.Height != 30 || !l.SideNav {
		t.Fatalf("unexpected layout %+v", l)
	}
}
