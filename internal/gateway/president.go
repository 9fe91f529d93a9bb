package gateway

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/rmercier/mission-docs/internal/models"
)

var mandatePattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// ResolvePresident picks the current president among a structure's members:
// president role (explicit role value or presidency role group) with a well-formed
// "YYYY-YYYY" mandate, most recent mandate start year first. Returns
// "Prenom Nom" when both parts are present, the display name otherwise, and
// "" when no member qualifies.
func ResolvePresident(members []*models.StructureMember) string {
	type candidate struct {
		member    *models.StructureMember
		startYear int
	}

	var candidates []candidate
	for _, m := range members {
		if m.Role != models.MemberRolePresident && m.RoleGroup != models.MemberGroupPresidence {
			continue
		}
		if m.Mandat == nil {
			continue
		}
		match := mandatePattern.FindStringSubmatch(*m.Mandat)
		if match == nil {
			continue
		}
		startYear, _ := strconv.Atoi(match[1])
		candidates = append(candidates, candidate{member: m, startYear: startYear})
	}

	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].startYear > candidates[j].startYear
	})

	president := candidates[0].member
	if president.Prenom != "" && president.Nom != "" {
		return president.Prenom + " " + president.Nom
	}
	if president.DisplayName != "" {
		return president.DisplayName
	}
	return ""
}
