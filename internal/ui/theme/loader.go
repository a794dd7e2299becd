package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// yamlTheme is the YAML representation of a theme. Colors left out fall
// back to the default theme.
type yamlTheme struct {
	Name    string `yaml:"name"`
	Base    string `yaml:"base"`
	Surface string `yaml:"surface"`
	Overlay string `yaml:"overlay"`

	Text    string `yaml:"text"`
	Subtext string `yaml:"subtext"`
	Muted   string `yaml:"muted"`

	Mauve  string `yaml:"mauve"`
	Red    string `yaml:"red"`
	Peach  string `yaml:"peach"`
	Yellow string `yaml:"yellow"`
	Green  string `yaml:"green"`
	Teal   string `yaml:"teal"`
	Blue   string `yaml:"blue"`

	BorderFocused   string `yaml:"border_focused"`
	BorderUnfocused string `yaml:"border_unfocused"`
}

// LoadCustomTheme loads a theme from a YAML file.
func LoadCustomTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme file: %w", err)
	}

	var yt yamlTheme
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return Theme{}, fmt.Errorf("parsing theme YAML: %w", err)
	}

	if yt.Name == "" {
		base := filepath.Base(path)
		yt.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	t := Default()
	t.Name = yt.Name
	for _, f := range []struct {
		dst *lipgloss.Color
		src string
	}{
		{&t.Base, yt.Base},
		{&t.Surface, yt.Surface},
		{&t.Overlay, yt.Overlay},
		{&t.Text, yt.Text},
		{&t.Subtext, yt.Subtext},
		{&t.Muted, yt.Muted},
		{&t.Mauve, yt.Mauve},
		{&t.Red, yt.Red},
		{&t.Peach, yt.Peach},
		{&t.Yellow, yt.Yellow},
		{&t.Green, yt.Green},
		{&t.Teal, yt.Teal},
		{&t.Blue, yt.Blue},
		{&t.BorderFocused, yt.BorderFocused},
		{&t.BorderUnfocused, yt.BorderUnfocused},
	} {
		if f.src != "" {
			*f.dst = lipgloss.Color(f.src)
		}
	}
	return t, nil
}

// LoadCustomThemes loads all YAML themes from a directory.
func LoadCustomThemes(dir string) map[string]Theme {
	themes := make(map[string]Theme)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return themes
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		t, err := LoadCustomTheme(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		themes[normalizeKey(t.Name)] = t
	}
	return themes
}
