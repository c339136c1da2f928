package archetype

import "strings"

// Archetype is one of the twelve personas a user or journal can carry. Name
// is the value stored by the API; Title is what gets shown.
type Archetype struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Title string `json:"title" yaml:"title"`
}

func (a Archetype) String() string {
	return a.Title
}

func All() []Archetype {
	a := make([]Archetype, 0, 12)

	a = append(a, Archetype{
		ID:    "seeker",
		Name:  "Seeker",
		Title: "Seeker",
	}, Archetype{
		ID:    "innocent",
		Name:  "Innocent",
		Title: "Innocent",
	}, Archetype{
		ID:    "orphan",
		Name:  "Orphan",
		Title: "Orphan",
	}, Archetype{
		ID:    "fool",
		Name:  "Fool",
		Title: "Fool (Jester)",
	}, Archetype{
		ID:    "sage",
		Name:  "Sage",
		Title: "Sage (Senex)",
	}, Archetype{
		ID:    "king",
		Name:  "King",
		Title: "King",
	}, Archetype{
		ID:    "creator",
		Name:  "Creator",
		Title: "Creator",
	}, Archetype{
		ID:    "rebel",
		Name:  "Rebel",
		Title: "Rebel (Destroyer)",
	}, Archetype{
		ID:    "magician",
		Name:  "Magician",
		Title: "Magician",
	}, Archetype{
		ID:    "caregiver",
		Name:  "Caregiver",
		Title: "Caregiver",
	}, Archetype{
		ID:    "lover",
		Name:  "Lover",
		Title: "Lover",
	}, Archetype{
		ID:    "warrior",
		Name:  "Warrior",
		Title: "Warrior",
	})

	return a
}

// Lookup finds an archetype by id, name or title, ignoring case.
func Lookup(v string) (Archetype, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return Archetype{}, false
	}
	for _, a := range All() {
		if strings.EqualFold(v, a.ID) || strings.EqualFold(v, a.Name) || strings.EqualFold(v, a.Title) {
			return a, true
		}
	}
	return Archetype{}, false
}

// Names lists the stored values in catalog order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, a := range all {
		names[i] = a.Name
	}
	return names
}

// Normalize maps user input onto the stored name. Unknown values come back
// unchanged so free text journal archetypes survive.
func Normalize(v string) string {
	if a, ok := Lookup(v); ok {
		return a.Name
	}
	return strings.TrimSpace(v)
}
