package tags

import "time"

// hasRateAndHours gates every derived amount: totals only make sense once
// both the hourly rate and the worked hours are set.
func hasRateAndHours(d *Data) bool {
	return d.Mission != nil && d.Mission.TauxHoraire.IsPositive() && d.Mission.NbHeures.IsPositive()
}

func missionDate(get func(d *Data) *time.Time) (func(d *Data) bool, func(d *Data) string) {
	present := func(d *Data) bool { return d.Mission != nil && get(d) != nil }
	format := func(d *Data) string {
		if d.Mission == nil {
			return ""
		}
		return fmtDate(get(d))
	}
	return present, format
}

func init() {
	debutPresent, debutFormat := missionDate(func(d *Data) *time.Time { return d.Mission.DateDebut })
	finPresent, finFormat := missionDate(func(d *Data) *time.Time { return d.Mission.DateFin })
	signaturePresent, signatureFormat := missionDate(func(d *Data) *time.Time { return d.Mission.DateSignature })
	paiementPresent, paiementFormat := missionDate(func(d *Data) *time.Time { return d.Mission.DatePaiement })

	register(
		str("mission_numero", "Numéro de mission", CategoryMission, func(d *Data) string {
			if d.Mission == nil {
				return ""
			}
			return d.Mission.Numero
		}),
		str("mission_titre", "Titre de la mission", CategoryMission, func(d *Data) string {
			if d.Mission == nil {
				return ""
			}
			return d.Mission.Titre
		}),
		str("mission_description", "Description de la mission", CategoryMission, func(d *Data) string {
			if d.Mission == nil {
				return ""
			}
			return d.Mission.Description
		}),
		str("mission_lieu", "Lieu de la mission", CategoryMission, func(d *Data) string {
			if d.Mission == nil {
				return ""
			}
			return d.Mission.Lieu
		}),
		Spec{
			ID: "mission_date_debut", Label: "Date de début", Category: CategoryMission,
			Present: debutPresent, Format: debutFormat,
		},
		Spec{
			ID: "mission_date_fin", Label: "Date de fin", Category: CategoryMission,
			Present: finPresent, Format: finFormat,
		},
		Spec{
			ID: "mission_date_signature", Label: "Date de signature", Category: CategoryMission,
			Present: signaturePresent, Format: signatureFormat,
		},
		Spec{
			ID: "mission_date_paiement", Label: "Date de paiement", Category: CategoryMission,
			Present: paiementPresent, Format: paiementFormat,
		},
		Spec{
			ID: "mission_date_creation", Label: "Date de création", Category: CategoryMission,
			Present: func(d *Data) bool { return d.Mission != nil && !d.Mission.CreatedAt.IsZero() },
			Format: func(d *Data) string {
				created := d.Mission.CreatedAt
				return fmtDate(&created)
			},
		},
		Spec{
			ID: "mission_duree_semaines", Label: "Durée en semaines", Category: CategoryMission,
			Present: func(d *Data) bool { return d.Mission != nil && d.Mission.DureeSemaines > 0 },
			Format:  func(d *Data) string { return fmtInt(d.Mission.DureeSemaines) },
		},
		Spec{
			ID: "mission_nb_etudiants", Label: "Nombre d'étudiants", Category: CategoryMission,
			Present: func(d *Data) bool { return d.Mission != nil && d.Mission.NbEtudiants > 0 },
			Format:  func(d *Data) string { return fmtInt(d.Mission.NbEtudiants) },
		},
		Spec{
			ID: "mission_nb_heures", Label: "Nombre d'heures", Category: CategoryMission,
			Present: func(d *Data) bool { return d.Mission != nil && d.Mission.NbHeures.IsPositive() },
			Format:  func(d *Data) string { return fmtNumber(d.Mission.NbHeures) },
		},
		Spec{
			ID: "mission_prix_heure_ht", Label: "Prix horaire HT", Category: CategoryMission,
			Present: func(d *Data) bool { return d.Mission != nil && d.Mission.TauxHoraire.IsPositive() },
			Format:  func(d *Data) string { return fmtMoney(d.Mission.TauxHoraire) },
		},
		Spec{
			ID: "mission_prix_total_heures_ht", Label: "Prix total des heures HT", Category: CategoryMission,
			Present: hasRateAndHours,
			Format:  func(d *Data) string { return fmtMoney(d.Totals.MissionHT) },
		},
		Spec{
			ID: "mission_total_depenses_ht", Label: "Total des dépenses HT", Category: CategoryMission,
			Present: func(d *Data) bool { return true },
			Format:  func(d *Data) string { return fmtMoney(d.Totals.DepensesHT) },
		},
		Spec{
			ID: "mission_prix_total_ht", Label: "Prix total HT", Category: CategoryMission,
			Present: hasRateAndHours,
			Format:  func(d *Data) string { return fmtMoney(d.Totals.TotalHT) },
		},
		Spec{
			ID: "mission_tva", Label: "Montant de la TVA", Category: CategoryMission,
			Present: hasRateAndHours,
			Format:  func(d *Data) string { return fmtMoney(d.Totals.TVA) },
		},
		Spec{
			ID: "mission_prix_total_ttc", Label: "Prix total TTC", Category: CategoryMission,
			Present: hasRateAndHours,
			Format:  func(d *Data) string { return fmtMoney(d.Totals.TotalTTC) },
		},
		Spec{
			ID: "mission_acompte", Label: "Acompte", Category: CategoryMission,
			Present: func(d *Data) bool { return d.Mission != nil && d.Mission.Acompte.IsPositive() },
			Format:  func(d *Data) string { return fmtMoney(d.Mission.Acompte) },
		},
		str("mission_charge_nom", "Nom du chargé de mission", CategoryMission, func(d *Data) string {
			if d.Charge == nil {
				return ""
			}
			return d.Charge.Nom
		}),
		str("mission_charge_prenom", "Prénom du chargé de mission", CategoryMission, func(d *Data) string {
			if d.Charge == nil {
				return ""
			}
			return d.Charge.Prenom
		}),
		str("mission_charge_nom_complet", "Chargé de mission", CategoryMission, func(d *Data) string {
			if d.Charge == nil {
				return ""
			}
			return d.Charge.NomComplet()
		}),
		str("mission_charge_email", "Email du chargé de mission", CategoryMission, func(d *Data) string {
			if d.Charge == nil {
				return ""
			}
			return d.Charge.Email
		}),
		str("mission_charge_telephone", "Téléphone du chargé de mission", CategoryMission, func(d *Data) string {
			if d.Charge == nil {
				return ""
			}
			return d.Charge.Telephone
		}),

		str("type_mission_nom", "Type de mission", CategoryTypeMission, func(d *Data) string {
			if d.Type == nil {
				return ""
			}
			return d.Type.Nom
		}),
		str("type_mission_description", "Description du type de mission", CategoryTypeMission, func(d *Data) string {
			if d.Type == nil {
				return ""
			}
			return d.Type.Description
		}),

		Spec{
			ID: "heures_total", Label: "Total des heures travaillées", Category: CategoryHeures,
			Present: func(d *Data) bool { return d.FeuilleTemps != nil && d.FeuilleTemps.HeuresTotal.IsPositive() },
			Format:  func(d *Data) string { return fmtNumber(d.FeuilleTemps.HeuresTotal) },
		},
		Spec{
			ID: "heures_date_debut", Label: "Début de la période travaillée", Category: CategoryHeures,
			Present: func(d *Data) bool { return d.FeuilleTemps != nil && d.FeuilleTemps.DateDebut != nil },
			Format:  func(d *Data) string { return fmtDate(d.FeuilleTemps.DateDebut) },
		},
		Spec{
			ID: "heures_date_fin", Label: "Fin de la période travaillée", Category: CategoryHeures,
			Present: func(d *Data) bool { return d.FeuilleTemps != nil && d.FeuilleTemps.DateFin != nil },
			Format:  func(d *Data) string { return fmtDate(d.FeuilleTemps.DateFin) },
		},
		Spec{
			ID: "heures_mois", Label: "Mois travaillé", Category: CategoryHeures,
			Present: func(d *Data) bool { return d.FeuilleTemps != nil && d.FeuilleTemps.DateDebut != nil },
			Format:  func(d *Data) string { return fmtMonthYear(d.FeuilleTemps.DateDebut) },
		},
		str("heures_detail", "Détail des heures", CategoryHeures, func(d *Data) string {
			if d.FeuilleTemps == nil {
				return ""
			}
			return d.FeuilleTemps.Detail
		}),

		Spec{
			ID: "date_jour", Label: "Date du jour", Category: CategoryDivers,
			Present: func(d *Data) bool { return true },
			Format: func(d *Data) string {
				now := d.Now
				return fmtDate(&now)
			},
		},
		Spec{
			ID: "annee_courante", Label: "Année courante", Category: CategoryDivers,
			Present: func(d *Data) bool { return true },
			Format:  func(d *Data) string { return d.Now.Format("2006") },
		},
	)
}
