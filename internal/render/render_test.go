package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	qrcode "github.com/skip2/go-qrcode"
)

func TestRender_PNG(t *testing.T) {
	art, err := New("medium").Render("https://example.com")
	if err != nil {
		t.Fatal(err)
	}
	if art.Text != "https://example.com" {
		t.Fatalf("Text = %q", art.Text)
	}

	data, err := art.PNG(200)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("PNG size = %dx%d, want 200x200", b.Dx(), b.Dy())
	}
}

func TestRender_Terminal(t *testing.T) {
	art, err := New("low").Render("hello")
	if err != nil {
		t.Fatal(err)
	}
	out := art.Terminal()
	if out == "" {
		t.Fatal("expected terminal rendering")
	}
	lines := strings.Split(out, "\n")
	// Half blocks pack two module rows per line.
	if want := (art.Modules() + 1) / 2; len(lines) != want {
		t.Fatalf("got %d lines, want %d", len(lines), want)
	}
}

func TestRender_TooLarge(t *testing.T) {
	if _, err := New("highest").Render(strings.Repeat("x", 5000)); err == nil {
		t.Fatal("expected error for oversized payload")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want qrcode.RecoveryLevel
	}{
		{"low", qrcode.Low},
		{"Medium", qrcode.Medium},
		{"HIGH", qrcode.High},
		{"highest", qrcode.Highest},
		{"", qrcode.Medium},
		{"bogus", qrcode.Medium},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
