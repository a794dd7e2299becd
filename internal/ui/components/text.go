package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Ellipsize keeps the first n runes of s and appends "..." when anything
// was cut.
func Ellipsize(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// FitHeight truncates or pads content to exactly h lines.
func FitHeight(content string, h int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// FitWidth drops trailing runes until s fits in w cells.
func FitWidth(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
