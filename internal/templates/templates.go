// Package templates holds the generator's quick-fill payloads.
package templates

// Template is a starting payload the user edits before generating.
type Template struct {
	Name        string
	Description string
	Category    string
	Payload     string
}

// Categories returns all template categories.
func Categories() []string {
	return []string{"Link", "Contact", "Network"}
}

// All returns all built-in templates in display order.
func All() []Template {
	return []Template{
		{
			Name:        "Website URL",
			Description: "Open a web page",
			Category:    "Link",
			Payload:     "https://example.com",
		},
		{
			Name:        "Email",
			Description: "Compose an email",
			Category:    "Contact",
			Payload:     "mailto:example@email.com",
		},
		{
			Name:        "Phone Number",
			Description: "Dial a phone number",
			Category:    "Contact",
			Payload:     "tel:+1234567890",
		},
		{
			Name:        "WiFi Network",
			Description: "Join a WPA network",
			Category:    "Network",
			Payload:     "WiFi:T:WPA;S:NetworkName;P:Password;;",
		},
	}
}

// ByCategory returns templates filtered by category.
func ByCategory(category string) []Template {
	var filtered []Template
	for _, t := range All() {
		if t.Category == category {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// ByName finds a template by name.
func ByName(name string) *Template {
	for _, t := range All() {
		if t.Name == name {
			return &t
		}
	}
	return nil
}

// At returns the template at a 1-based position, as numbered in the
// generator view.
func At(n int) (Template, bool) {
	all := All()
	if n < 1 || n > len(all) {
		return Template{}, false
	}
	return all[n-1], true
}
