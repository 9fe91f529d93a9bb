package tags

import "github.com/rmercier/mission-docs/internal/models"

func contactStr(id, label string, get func(c *models.Contact) string) Spec {
	return str(id, label, CategoryContact, func(d *Data) string {
		if d.Contact == nil {
			return ""
		}
		return get(d.Contact)
	})
}

func entrepriseStr(id, label string, get func(e *models.Entreprise) string) Spec {
	return str(id, label, CategoryEntreprise, func(d *Data) string {
		if d.Entreprise == nil {
			return ""
		}
		return get(d.Entreprise)
	})
}

func structureStr(id, label string, get func(s *models.Structure) string) Spec {
	return str(id, label, CategoryStructure, func(d *Data) string {
		if d.Structure == nil {
			return ""
		}
		return get(d.Structure)
	})
}

func etudiantStr(id, label string, get func(u *models.Utilisateur) string) Spec {
	return str(id, label, CategoryUtilisateur, func(d *Data) string {
		if d.Etudiant == nil {
			return ""
		}
		return get(d.Etudiant)
	})
}

func init() {
	register(
		contactStr("contact_civilite", "Civilité du contact", func(c *models.Contact) string { return c.Civilite }),
		contactStr("contact_nom", "Nom du contact", func(c *models.Contact) string { return c.Nom }),
		contactStr("contact_prenom", "Prénom du contact", func(c *models.Contact) string { return c.Prenom }),
		contactStr("contact_nom_complet", "Contact", func(c *models.Contact) string { return c.NomComplet() }),
		contactStr("contact_email", "Email du contact", func(c *models.Contact) string { return c.Email }),
		contactStr("contact_telephone", "Téléphone du contact", func(c *models.Contact) string { return c.Telephone }),
		contactStr("contact_fonction", "Fonction du contact", func(c *models.Contact) string { return c.Fonction }),

		entrepriseStr("entreprise_nom", "Nom de l'entreprise", func(e *models.Entreprise) string { return e.Nom }),
		entrepriseStr("entreprise_adresse", "Adresse de l'entreprise", func(e *models.Entreprise) string { return e.Adresse }),
		entrepriseStr("entreprise_code_postal", "Code postal de l'entreprise", func(e *models.Entreprise) string { return e.CodePostal }),
		entrepriseStr("entreprise_ville", "Ville de l'entreprise", func(e *models.Entreprise) string { return e.Ville }),
		entrepriseStr("entreprise_pays", "Pays de l'entreprise", func(e *models.Entreprise) string { return e.Pays }),
		entrepriseStr("entreprise_siret", "SIRET de l'entreprise", func(e *models.Entreprise) string { return e.Siret }),
		entrepriseStr("entreprise_code_ape", "Code APE de l'entreprise", func(e *models.Entreprise) string { return e.CodeAPE }),
		entrepriseStr("entreprise_tva_intracom", "TVA intracommunautaire de l'entreprise", func(e *models.Entreprise) string { return e.TVAIntracom }),
		entrepriseStr("entreprise_telephone", "Téléphone de l'entreprise", func(e *models.Entreprise) string { return e.Telephone }),
		entrepriseStr("entreprise_site_web", "Site web de l'entreprise", func(e *models.Entreprise) string { return e.SiteWeb }),
		entrepriseStr("entreprise_adresse_complete", "Adresse complète de l'entreprise", func(e *models.Entreprise) string {
			if e.Adresse == "" || e.CodePostal == "" || e.Ville == "" {
				return ""
			}
			return e.Adresse + ", " + e.CodePostal + " " + e.Ville
		}),

		structureStr("structure_nom", "Nom de la structure", func(s *models.Structure) string { return s.Nom }),
		structureStr("structure_sigle", "Sigle de la structure", func(s *models.Structure) string { return s.Sigle }),
		structureStr("structure_adresse", "Adresse de la structure", func(s *models.Structure) string { return s.Adresse }),
		structureStr("structure_code_postal", "Code postal de la structure", func(s *models.Structure) string { return s.CodePostal }),
		structureStr("structure_ville", "Ville de la structure", func(s *models.Structure) string { return s.Ville }),
		structureStr("structure_email", "Email de la structure", func(s *models.Structure) string { return s.Email }),
		structureStr("structure_telephone", "Téléphone de la structure", func(s *models.Structure) string { return s.Telephone }),
		structureStr("structure_siret", "SIRET de la structure", func(s *models.Structure) string { return s.Siret }),
		structureStr("structure_urssaf", "Numéro URSSAF de la structure", func(s *models.Structure) string { return s.NumeroURSSAF }),
		structureStr("structure_site_web", "Site web de la structure", func(s *models.Structure) string { return s.SiteWeb }),
		structureStr("structure_adresse_complete", "Adresse complète de la structure", func(s *models.Structure) string {
			if s.Adresse == "" || s.CodePostal == "" || s.Ville == "" {
				return ""
			}
			return s.Adresse + ", " + s.CodePostal + " " + s.Ville
		}),
		str("structure_president", "Président de la structure", CategoryStructure, func(d *Data) string {
			return d.President
		}),

		etudiantStr("etudiant_nom", "Nom de l'étudiant", func(u *models.Utilisateur) string { return u.Nom }),
		etudiantStr("etudiant_prenom", "Prénom de l'étudiant", func(u *models.Utilisateur) string { return u.Prenom }),
		etudiantStr("etudiant_nom_complet", "Étudiant", func(u *models.Utilisateur) string { return u.NomComplet() }),
		etudiantStr("etudiant_email", "Email de l'étudiant", func(u *models.Utilisateur) string { return u.Email }),
		etudiantStr("etudiant_telephone", "Téléphone de l'étudiant", func(u *models.Utilisateur) string { return u.Telephone }),
		Spec{
			ID: "etudiant_date_naissance", Label: "Date de naissance de l'étudiant", Category: CategoryUtilisateur,
			Present: func(d *Data) bool { return d.Etudiant != nil && d.Etudiant.DateNaissance != nil },
			Format: func(d *Data) string {
				if d.Etudiant == nil {
					return ""
				}
				return fmtDate(d.Etudiant.DateNaissance)
			},
		},
		etudiantStr("etudiant_lieu_naissance", "Lieu de naissance de l'étudiant", func(u *models.Utilisateur) string { return u.LieuNaissance }),
		etudiantStr("etudiant_adresse", "Adresse de l'étudiant", func(u *models.Utilisateur) string { return u.Adresse }),
		etudiantStr("etudiant_code_postal", "Code postal de l'étudiant", func(u *models.Utilisateur) string { return u.CodePostal }),
		etudiantStr("etudiant_ville", "Ville de l'étudiant", func(u *models.Utilisateur) string { return u.Ville }),
		etudiantStr("etudiant_adresse_complete", "Adresse complète de l'étudiant", func(u *models.Utilisateur) string {
			if u.Adresse == "" || u.CodePostal == "" || u.Ville == "" {
				return ""
			}
			return u.Adresse + ", " + u.CodePostal + " " + u.Ville
		}),
		etudiantStr("etudiant_numero_secu", "Numéro de sécurité sociale de l'étudiant", func(u *models.Utilisateur) string { return u.NumeroSecu }),
		etudiantStr("etudiant_ecole", "École de l'étudiant", func(u *models.Utilisateur) string { return u.Ecole }),
		etudiantStr("etudiant_niveau_etudes", "Niveau d'études de l'étudiant", func(u *models.Utilisateur) string { return u.NiveauEtudes }),
		etudiantStr("etudiant_nationalite", "Nationalité de l'étudiant", func(u *models.Utilisateur) string { return u.Nationalite }),
	)
}
