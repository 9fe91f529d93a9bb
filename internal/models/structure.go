package models

// Structure is the junior organization that carries out missions.
type Structure struct {
	ID           string `json:"id"`
	Nom          string `json:"nom"`
	Sigle        string `json:"sigle"`
	Adresse      string `json:"adresse"`
	CodePostal   string `json:"code_postal"`
	Ville        string `json:"ville"`
	Email        string `json:"email"`
	Telephone    string `json:"telephone"`
	Siret        string `json:"siret"`
	NumeroURSSAF string `json:"numero_urssaf"`
	SiteWeb      string `json:"site_web"`
}

// Member roles within a structure. The president may be identified either by
// an explicit role value or by membership in the presidency role group.
const (
	MemberRolePresident   = "president"
	MemberGroupPresidence = "presidence"
)

// StructureMember is one member of a structure, with an optional mandate
// period formatted "YYYY-YYYY".
type StructureMember struct {
	ID          string  `json:"id"`
	StructureID string  `json:"structure_id"`
	Prenom      string  `json:"prenom"`
	Nom         string  `json:"nom"`
	DisplayName string  `json:"display_name"`
	Role        string  `json:"role"`
	RoleGroup   string  `json:"role_group"`
	Mandat      *string `json:"mandat,omitempty"`
}
