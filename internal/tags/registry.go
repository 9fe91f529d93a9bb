package tags

import "regexp"

// Tag categories, used to group missing-data items for operator review.
// CategoryInconnue is reserved for tags outside the registry.
const (
	CategoryMission     = "Mission"
	CategoryContact     = "Contact"
	CategoryUtilisateur = "Utilisateur"
	CategoryStructure   = "Structure"
	CategoryEntreprise  = "Entreprise"
	CategoryHeures      = "Heures de travail"
	CategoryTypeMission = "Type de mission"
	CategoryDivers      = "Divers"
	CategoryDepenses    = "Dépenses"
	CategoryInconnue    = "Balise inconnue"
)

// Spec is one entry of the closed tag registry. Present and Format share the
// same inputs so the missing-data detector and the resolver can never
// disagree on what a tag needs.
type Spec struct {
	ID       string
	Label    string
	Category string
	// Optional tags (expense slots) resolve to "" when unset and are never
	// reported as missing.
	Optional bool
	Present  func(d *Data) bool
	Format   func(d *Data) string
}

// tagPattern matches a symbolic tag literal in authored template text.
var tagPattern = regexp.MustCompile(`<([a-zA-Z0-9_]+)>`)

var registry []Spec

var registryByID = make(map[string]Spec)

func register(specs ...Spec) {
	for _, s := range specs {
		registry = append(registry, s)
		registryByID[s.ID] = s
	}
}

// Lookup returns the registry entry for a tag id
func Lookup(id string) (Spec, bool) {
	s, ok := registryByID[id]
	return s, ok
}

// All returns the full registry in declaration order
func All() []Spec {
	out := make([]Spec, len(registry))
	copy(out, registry)
	return out
}

// Extract returns every tag id referenced in a text, in order of appearance,
// duplicates included
func Extract(text string) []string {
	matches := tagPattern.FindAllStringSubmatch(text, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}

// str builds a registry entry for a plain string source: present when
// non-empty, formatted as-is.
func str(id, label, category string, get func(d *Data) string) Spec {
	return Spec{
		ID:       id,
		Label:    label,
		Category: category,
		Present:  func(d *Data) bool { return get(d) != "" },
		Format:   get,
	}
}
