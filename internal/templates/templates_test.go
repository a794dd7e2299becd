package templates

import (
	"testing"
)

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 4 {
		t.Fatalf("expected 4 templates, got %d", len(all))
	}

	for _, tmpl := range all {
		if tmpl.Name == "" {
			t.Error("template has empty name")
		}
		if tmpl.Description == "" {
			t.Errorf("template %q has empty description", tmpl.Name)
		}
		if tmpl.Category == "" {
			t.Errorf("template %q has empty category", tmpl.Name)
		}
		if tmpl.Payload == "" {
			t.Errorf("template %q has empty payload", tmpl.Name)
		}
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) == 0 {
		t.Fatal("expected categories")
	}

	expected := map[string]bool{"Link": true, "Contact": true, "Network": true}
	for _, c := range cats {
		if !expected[c] {
			t.Errorf("unexpected category %q", c)
		}
	}
}

func TestByCategory(t *testing.T) {
	contact := ByCategory("Contact")
	if len(contact) != 2 {
		t.Errorf("expected 2 Contact templates, got %d", len(contact))
	}
	for _, tmpl := range contact {
		if tmpl.Category != "Contact" {
			t.Errorf("expected Contact category, got %q", tmpl.Category)
		}
	}

	none := ByCategory("NonExistent")
	if len(none) != 0 {
		t.Errorf("expected 0 templates for non-existent category, got %d", len(none))
	}
}

func TestByName(t *testing.T) {
	tmpl := ByName("WiFi Network")
	if tmpl == nil {
		t.Fatal("expected to find 'WiFi Network' template")
	}
	if tmpl.Payload != "WiFi:T:WPA;S:NetworkName;P:Password;;" {
		t.Errorf("unexpected payload %q", tmpl.Payload)
	}

	if missing := ByName("NonExistent"); missing != nil {
		t.Error("expected nil for non-existent template")
	}
}

func TestAt(t *testing.T) {
	tests := []struct {
		n      int
		want   string
		wantOK bool
	}{
		{1, "https://example.com", true},
		{2, "mailto:example@email.com", true},
		{3, "tel:+1234567890", true},
		{4, "WiFi:T:WPA;S:NetworkName;P:Password;;", true},
		{0, "", false},
		{5, "", false},
	}
	for _, tt := range tests {
		got, ok := At(tt.n)
		if ok != tt.wantOK || got.Payload != tt.want {
			t.Errorf("At(%d) = %q, %v; want %q, %v", tt.n, got.Payload, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTemplateCompleteness(t *testing.T) {
	for _, cat := range Categories() {
		if len(ByCategory(cat)) == 0 {
			t.Errorf("category %q has no templates", cat)
		}
	}
}
