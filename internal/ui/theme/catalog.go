package theme

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Catalog maps theme names to themes.
var Catalog = map[string]Theme{}

func init() {
	for _, t := range []Theme{CatppuccinMocha, CatppuccinLatte, Nord, Dracula, GruvboxDark, TokyoNight} {
		Catalog[normalizeKey(t.Name)] = t
	}
}

// Get returns a built-in theme by name.
func Get(name string) (Theme, bool) {
	t, ok := Catalog[normalizeKey(name)]
	return t, ok
}

// Names returns all built-in theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(Catalog))
	for _, t := range Catalog {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

// Resolve looks up a theme by name: built-ins, then custom themes in
// ~/.config/qrdeck/themes, then the default.
func Resolve(name string) Theme {
	if t, ok := Get(name); ok {
		return t
	}

	home, err := os.UserHomeDir()
	if err == nil {
		customs := LoadCustomThemes(filepath.Join(home, ".config", "qrdeck", "themes"))
		if t, ok := customs[normalizeKey(name)]; ok {
			return t
		}
	}

	return Default()
}

func normalizeKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}
