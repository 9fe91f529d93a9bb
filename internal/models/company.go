package models

// Entreprise is the client company a mission is billed to.
type Entreprise struct {
	ID          string `json:"id"`
	Nom         string `json:"nom"`
	Adresse     string `json:"adresse"`
	CodePostal  string `json:"code_postal"`
	Ville       string `json:"ville"`
	Pays        string `json:"pays"`
	Siret       string `json:"siret"`
	CodeAPE     string `json:"code_ape"`
	TVAIntracom string `json:"tva_intracommunautaire"`
	Telephone   string `json:"telephone"`
	SiteWeb     string `json:"site_web"`
}
