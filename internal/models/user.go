package models

import "time"

// Utilisateur is a student member: either the applicant assigned to a mission
// or the staff member in charge of it.
type Utilisateur struct {
	ID            string     `json:"id"`
	Nom           string     `json:"nom"`
	Prenom        string     `json:"prenom"`
	Email         string     `json:"email"`
	Telephone     string     `json:"telephone"`
	DateNaissance *time.Time `json:"date_naissance,omitempty"`
	LieuNaissance string     `json:"lieu_naissance"`
	Adresse       string     `json:"adresse"`
	CodePostal    string     `json:"code_postal"`
	Ville         string     `json:"ville"`
	NumeroSecu    string     `json:"numero_secu"`
	Ecole         string     `json:"ecole"`
	NiveauEtudes  string     `json:"niveau_etudes"`
	Nationalite   string     `json:"nationalite"`
}

// NomComplet composes "Prenom Nom", skipping empty parts.
func (u *Utilisateur) NomComplet() string {
	switch {
	case u.Prenom != "" && u.Nom != "":
		return u.Prenom + " " + u.Nom
	case u.Nom != "":
		return u.Nom
	default:
		return u.Prenom
	}
}
