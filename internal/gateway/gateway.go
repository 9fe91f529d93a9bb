package gateway

import (
	"context"
	"fmt"

	"github.com/rmercier/mission-docs/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Bundle is the set of related entity records fetched once per detection or
// generation run. Records the mission doesn't reference are nil.
type Bundle struct {
	Mission      *models.Mission
	Contact      *models.Contact
	Entreprise   *models.Entreprise
	Structure    *models.Structure
	Type         *models.MissionType
	Charge       *models.Utilisateur
	Etudiant     *models.Utilisateur
	FeuilleTemps *models.FeuilleTemps
	President    string
}

// Options customizes a fetch. Reuse short-circuits the fetch with a bundle
// obtained earlier in the same workflow (detection pass feeding the
// generation pass).
type Options struct {
	IncludeApplicant bool
	Reuse            *Bundle
}

// Record sources, satisfied by the repository package
type (
	ContactSource interface {
		GetByID(ctx context.Context, id string) (*models.Contact, error)
	}
	EntrepriseSource interface {
		GetByID(ctx context.Context, id string) (*models.Entreprise, error)
	}
	StructureSource interface {
		GetByID(ctx context.Context, id string) (*models.Structure, error)
		ListMembers(ctx context.Context, structureID string) ([]*models.StructureMember, error)
	}
	UtilisateurSource interface {
		GetByID(ctx context.Context, id string) (*models.Utilisateur, error)
	}
	MissionTypeSource interface {
		GetByID(ctx context.Context, id string) (*models.MissionType, error)
	}
	TimesheetSource interface {
		GetByMissionID(ctx context.Context, missionID string) (*models.FeuilleTemps, error)
	}
)

// Gateway fans out the independent entity lookups of one mission and returns
// a single bundle. Lookups run concurrently; only the president resolution is
// serialized behind the structure fetch it depends on.
type Gateway struct {
	contacts    ContactSource
	entreprises EntrepriseSource
	structures  StructureSource
	users       UtilisateurSource
	types       MissionTypeSource
	timesheets  TimesheetSource
	logger      *zap.Logger
}

// New creates a new entity gateway
func New(
	contacts ContactSource,
	entreprises EntrepriseSource,
	structures StructureSource,
	users UtilisateurSource,
	types MissionTypeSource,
	timesheets TimesheetSource,
	logger *zap.Logger,
) *Gateway {
	return &Gateway{
		contacts:    contacts,
		entreprises: entreprises,
		structures:  structures,
		users:       users,
		types:       types,
		timesheets:  timesheets,
		logger:      logger,
	}
}

// FetchAll fetches every record the mission references. Unreferenced lookups
// resolve to nil instead of failing the fetch; a repository error fails the
// whole fetch.
func (g *Gateway) FetchAll(ctx context.Context, mission *models.Mission, opts Options) (*Bundle, error) {
	if opts.Reuse != nil {
		return opts.Reuse, nil
	}

	bundle := &Bundle{Mission: mission}
	eg, egCtx := errgroup.WithContext(ctx)

	if mission.ContactID != "" {
		eg.Go(func() error {
			contact, err := g.contacts.GetByID(egCtx, mission.ContactID)
			if err != nil {
				return fmt.Errorf("contact lookup: %w", err)
			}
			bundle.Contact = contact
			return nil
		})
	}

	if mission.EntrepriseID != "" {
		eg.Go(func() error {
			entreprise, err := g.entreprises.GetByID(egCtx, mission.EntrepriseID)
			if err != nil {
				return fmt.Errorf("company lookup: %w", err)
			}
			bundle.Entreprise = entreprise
			return nil
		})
	}

	if mission.TypeID != "" {
		eg.Go(func() error {
			missionType, err := g.types.GetByID(egCtx, mission.TypeID)
			if err != nil {
				return fmt.Errorf("mission type lookup: %w", err)
			}
			bundle.Type = missionType
			return nil
		})
	}

	if mission.ChargeID != "" {
		eg.Go(func() error {
			charge, err := g.users.GetByID(egCtx, mission.ChargeID)
			if err != nil {
				return fmt.Errorf("manager lookup: %w", err)
			}
			bundle.Charge = charge
			return nil
		})
	}

	if opts.IncludeApplicant && mission.EtudiantID != "" {
		eg.Go(func() error {
			etudiant, err := g.users.GetByID(egCtx, mission.EtudiantID)
			if err != nil {
				return fmt.Errorf("applicant lookup: %w", err)
			}
			bundle.Etudiant = etudiant
			return nil
		})
	}

	eg.Go(func() error {
		timesheet, err := g.timesheets.GetByMissionID(egCtx, mission.ID)
		if err != nil {
			return fmt.Errorf("timesheet lookup: %w", err)
		}
		bundle.FeuilleTemps = timesheet
		return nil
	})

	if mission.StructureID != "" {
		// The president lookup depends on the structure id, so both stay in
		// one goroutine.
		eg.Go(func() error {
			structure, err := g.structures.GetByID(egCtx, mission.StructureID)
			if err != nil {
				return fmt.Errorf("structure lookup: %w", err)
			}
			bundle.Structure = structure
			if structure == nil {
				return nil
			}

			members, err := g.structures.ListMembers(egCtx, structure.ID)
			if err != nil {
				return fmt.Errorf("structure members lookup: %w", err)
			}
			bundle.President = ResolvePresident(members)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		g.logger.Error("Entity fetch failed",
			zap.String("mission_id", mission.ID),
			zap.Error(err))
		return nil, err
	}

	g.logger.Debug("Entity bundle fetched",
		zap.String("mission_id", mission.ID),
		zap.Bool("has_contact", bundle.Contact != nil),
		zap.Bool("has_company", bundle.Entreprise != nil),
		zap.Bool("has_structure", bundle.Structure != nil),
		zap.Bool("has_timesheet", bundle.FeuilleTemps != nil),
		zap.String("president", bundle.President))

	return bundle, nil
}
