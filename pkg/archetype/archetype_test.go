package archetype

import "testing"

func TestLookup(t *testing.T) {
	tests := map[string]string{
		"seeker":            "Seeker",
		"FOOL":              "Fool",
		"Fool (Jester)":     "Fool",
		"rebel (destroyer)": "Rebel",
		" Sage ":            "Sage",
	}
	for in, want := range tests {
		a, ok := Lookup(in)
		if !ok {
			t.Fatalf("Lookup(%q) not found", in)
		}
		if a.Name != want {
			t.Fatalf("Lookup(%q) = %q, want %q", in, a.Name, want)
		}
	}
	if _, ok := Lookup("Jester"); ok {
		t.Fatalf("expected Jester alone to be unknown")
	}
	if _, ok := Lookup(""); ok {
		t.Fatalf("expected empty to be unknown")
	}
}

func TestNamesOrder(t *testing.T) {
	names := Names()
	if len(names) != 12 {
		t.Fatalf("expected 12 archetypes, got %d", len(names))
	}
	if names[0] != "Seeker" || names[11] != "Warrior" {
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestNormalizeKeepsFreeText(t *testing.T) {
	if got := Normalize("caregiver"); got != "Caregiver" {
		t.Fatalf("Normalize(caregiver) = %q", got)
	}
	if got := Normalize(" dreamer "); got != "dreamer" {
		t.Fatalf("Normalize(dreamer) = %q", got)
	}
}
