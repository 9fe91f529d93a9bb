package gateway

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rmercier/mission-docs/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSources struct {
	contact    *models.Contact
	entreprise *models.Entreprise
	structure  *models.Structure
	members    []*models.StructureMember
	users      map[string]*models.Utilisateur
	missionTyp *models.MissionType
	timesheet  *models.FeuilleTemps

	userCalls   int32
	failContact bool
}

type contactFn fakeSources

func (f *contactFn) GetByID(_ context.Context, _ string) (*models.Contact, error) {
	if f.failContact {
		return nil, errors.New("contact store down")
	}
	return f.contact, nil
}

type entrepriseFn fakeSources

func (f *entrepriseFn) GetByID(_ context.Context, _ string) (*models.Entreprise, error) {
	return f.entreprise, nil
}

type structureFn fakeSources

func (f *structureFn) GetByID(_ context.Context, _ string) (*models.Structure, error) {
	return f.structure, nil
}

func (f *structureFn) ListMembers(_ context.Context, _ string) ([]*models.StructureMember, error) {
	return f.members, nil
}

type userFn fakeSources

func (f *userFn) GetByID(_ context.Context, id string) (*models.Utilisateur, error) {
	atomic.AddInt32(&f.userCalls, 1)
	return f.users[id], nil
}

type typeFn fakeSources

func (f *typeFn) GetByID(_ context.Context, _ string) (*models.MissionType, error) {
	return f.missionTyp, nil
}

type timesheetFn fakeSources

func (f *timesheetFn) GetByMissionID(_ context.Context, _ string) (*models.FeuilleTemps, error) {
	return f.timesheet, nil
}

func newTestGateway(f *fakeSources) *Gateway {
	return New(
		(*contactFn)(f),
		(*entrepriseFn)(f),
		(*structureFn)(f),
		(*userFn)(f),
		(*typeFn)(f),
		(*timesheetFn)(f),
		zap.NewNop(),
	)
}

func fullMission() *models.Mission {
	return &models.Mission{
		ID:           "mission-1",
		ContactID:    "contact-1",
		EntrepriseID: "ent-1",
		StructureID:  "struct-1",
		TypeID:       "type-1",
		ChargeID:     "user-charge",
		EtudiantID:   "user-etudiant",
	}
}

func mandat(s string) *string { return &s }

func TestFetchAll(t *testing.T) {
	sources := &fakeSources{
		contact:    &models.Contact{ID: "contact-1", Nom: "Durand"},
		entreprise: &models.Entreprise{ID: "ent-1", Nom: "ACME"},
		structure:  &models.Structure{ID: "struct-1", Nom: "Junior Conseil"},
		members: []*models.StructureMember{
			{Prenom: "Paul", Nom: "Martin", Role: models.MemberRolePresident, Mandat: mandat("2023-2024")},
		},
		users: map[string]*models.Utilisateur{
			"user-charge":   {ID: "user-charge", Nom: "Petit"},
			"user-etudiant": {ID: "user-etudiant", Nom: "Moreau"},
		},
		missionTyp: &models.MissionType{ID: "type-1", Nom: "Étude"},
		timesheet:  &models.FeuilleTemps{MissionID: "mission-1"},
	}
	gw := newTestGateway(sources)

	t.Run("full bundle with applicant", func(t *testing.T) {
		bundle, err := gw.FetchAll(context.Background(), fullMission(), Options{IncludeApplicant: true})
		require.NoError(t, err)

		assert.Equal(t, "Durand", bundle.Contact.Nom)
		assert.Equal(t, "ACME", bundle.Entreprise.Nom)
		assert.Equal(t, "Junior Conseil", bundle.Structure.Nom)
		assert.Equal(t, "Étude", bundle.Type.Nom)
		assert.Equal(t, "Petit", bundle.Charge.Nom)
		assert.Equal(t, "Moreau", bundle.Etudiant.Nom)
		assert.NotNil(t, bundle.FeuilleTemps)
		assert.Equal(t, "Paul Martin", bundle.President)
	})

	t.Run("applicant skipped unless requested", func(t *testing.T) {
		bundle, err := gw.FetchAll(context.Background(), fullMission(), Options{})
		require.NoError(t, err)
		assert.Nil(t, bundle.Etudiant)
	})

	t.Run("unreferenced lookups resolve to nil", func(t *testing.T) {
		mission := &models.Mission{ID: "mission-2"}
		before := atomic.LoadInt32(&sources.userCalls)

		bundle, err := gw.FetchAll(context.Background(), mission, Options{IncludeApplicant: true})
		require.NoError(t, err)

		assert.Nil(t, bundle.Contact)
		assert.Nil(t, bundle.Entreprise)
		assert.Nil(t, bundle.Structure)
		assert.Empty(t, bundle.President)
		assert.Equal(t, before, atomic.LoadInt32(&sources.userCalls), "no user lookup without ids")
	})

	t.Run("reuse short-circuits the fetch", func(t *testing.T) {
		previous := &Bundle{Mission: fullMission(), President: "Paul Martin"}
		before := atomic.LoadInt32(&sources.userCalls)

		bundle, err := gw.FetchAll(context.Background(), fullMission(), Options{Reuse: previous})
		require.NoError(t, err)
		assert.Same(t, previous, bundle)
		assert.Equal(t, before, atomic.LoadInt32(&sources.userCalls))
	})

	t.Run("repository error fails the fetch", func(t *testing.T) {
		failing := &fakeSources{failContact: true}
		bundle, err := newTestGateway(failing).FetchAll(context.Background(),
			&models.Mission{ID: "mission-3", ContactID: "contact-1"}, Options{})
		require.Error(t, err)
		assert.Nil(t, bundle)
	})
}

func TestResolvePresident(t *testing.T) {
	tests := []struct {
		name    string
		members []*models.StructureMember
		want    string
	}{
		{
			name: "explicit role with mandate",
			members: []*models.StructureMember{
				{Prenom: "Paul", Nom: "Martin", Role: models.MemberRolePresident, Mandat: mandat("2023-2024")},
			},
			want: "Paul Martin",
		},
		{
			name: "presidency role group qualifies",
			members: []*models.StructureMember{
				{Prenom: "Anne", Nom: "Leroy", Role: "secretaire-general", RoleGroup: models.MemberGroupPresidence, Mandat: mandat("2022-2023")},
			},
			want: "Anne Leroy",
		},
		{
			name: "most recent mandate wins",
			members: []*models.StructureMember{
				{Prenom: "Ancien", Nom: "Président", Role: models.MemberRolePresident, Mandat: mandat("2021-2022")},
				{Prenom: "Paul", Nom: "Martin", Role: models.MemberRolePresident, Mandat: mandat("2023-2024")},
			},
			want: "Paul Martin",
		},
		{
			name: "missing mandate disqualifies",
			members: []*models.StructureMember{
				{Prenom: "Sans", Nom: "Mandat", Role: models.MemberRolePresident},
			},
			want: "",
		},
		{
			name: "malformed mandate disqualifies",
			members: []*models.StructureMember{
				{Prenom: "Mauvais", Nom: "Format", Role: models.MemberRolePresident, Mandat: mandat("2023/2024")},
			},
			want: "",
		},
		{
			name: "display name fallback",
			members: []*models.StructureMember{
				{DisplayName: "P. Martin", Role: models.MemberRolePresident, Mandat: mandat("2023-2024")},
			},
			want: "P. Martin",
		},
		{
			name: "other roles ignored",
			members: []*models.StructureMember{
				{Prenom: "Simple", Nom: "Membre", Role: "tresorier", Mandat: mandat("2023-2024")},
			},
			want: "",
		},
		{
			name: "no members",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePresident(tt.members))
		})
	}
}
