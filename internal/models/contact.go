package models

// Contact is the client-side counterpart of a mission.
type Contact struct {
	ID        string `json:"id"`
	Civilite  string `json:"civilite"` // "M." or "Mme"
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Fonction  string `json:"fonction"`
}

// NomComplet composes "Prenom Nom", skipping empty parts.
func (c *Contact) NomComplet() string {
	switch {
	case c.Prenom != "" && c.Nom != "":
		return c.Prenom + " " + c.Nom
	case c.Nom != "":
		return c.Nom
	default:
		return c.Prenom
	}
}
