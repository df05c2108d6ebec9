package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/cynq/cynq-backend/internal/data/repos"
	types "github.com/cynq/cynq-backend/internal/domain"
	eco "github.com/cynq/cynq-backend/internal/domain/ecosystem"
	"github.com/cynq/cynq-backend/internal/pkg/ctxutil"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

type CreateItemInput struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

type CreateRelationshipInput struct {
	SourceID         uuid.UUID `json:"source_id"`
	SourceType       string    `json:"source_type"`
	TargetID         uuid.UUID `json:"target_id"`
	TargetType       string    `json:"target_type"`
	RelationshipType string    `json:"relationship_type"`
	Strength         *float64  `json:"strength,omitempty"`
}

// UpdateRelationshipInput carries the mutable edge fields; nil means
// leave unchanged.
type UpdateRelationshipInput struct {
	RelationshipType *string  `json:"relationship_type,omitempty"`
	Strength         *float64 `json:"strength,omitempty"`
}

type EcosystemService interface {
	Snapshot(ctx context.Context, ownerID uuid.UUID) (*Snapshot, error)
	Import(ctx context.Context, ownerID uuid.UUID, batch ImportBatch) (*MergeResult, error)

	CreateItem(ctx context.Context, ownerID uuid.UUID, cat eco.Category, in CreateItemInput) (*MergeResult, error)
	DeleteItem(ctx context.Context, ownerID uuid.UUID, cat eco.Category, id uuid.UUID) error

	CreateRelationship(ctx context.Context, ownerID uuid.UUID, in CreateRelationshipInput) (*types.Relationship, error)
	UpdateRelationship(ctx context.Context, ownerID, id uuid.UUID, in UpdateRelationshipInput) (*types.Relationship, error)
	DeleteRelationship(ctx context.Context, ownerID, id uuid.UUID) error
}

type ecosystemService struct {
	db               *gorm.DB
	log              *logger.Logger
	entityRepo       repos.EntityRepo
	relationshipRepo repos.RelationshipRepo
	events           EventPublisher
}

func NewEcosystemService(
	db *gorm.DB,
	log *logger.Logger,
	entityRepo repos.EntityRepo,
	relationshipRepo repos.RelationshipRepo,
	events EventPublisher,
) EcosystemService {
	if events == nil {
		events = NopPublisher{}
	}
	return &ecosystemService{
		db:               db,
		log:              log.With("service", "EcosystemService"),
		entityRepo:       entityRepo,
		relationshipRepo: relationshipRepo,
		events:           events,
	}
}

// Snapshot loads every category in parallel; the categories are
// independent tables so the reads do not contend.
func (s *ecosystemService) Snapshot(ctx context.Context, ownerID uuid.UUID) (*Snapshot, error) {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	dbc := func() dbctx.Context { return dbctx.Context{Ctx: gctx} }

	g.Go(func() error {
		var err error
		snap.Contacts, err = s.entityRepo.ListContacts(dbc(), ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Events, err = s.entityRepo.ListEvents(dbc(), ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Communities, err = s.entityRepo.ListCommunities(dbc(), ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Organizations, err = s.entityRepo.ListOrganizations(dbc(), ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Skills, err = s.entityRepo.ListSkills(dbc(), ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Projects, err = s.entityRepo.ListProjects(dbc(), ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Knowledge, err = s.entityRepo.ListKnowledge(dbc(), ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Relationships, err = s.relationshipRepo.ListByUser(dbc(), ownerID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &snap, nil
}

// Import merges a batch into the owner's ecosystem and persists the
// novel rows. Re-importing the same batch adds nothing.
func (s *ecosystemService) Import(ctx context.Context, ownerID uuid.UUID, batch ImportBatch) (*MergeResult, error) {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	snap, err := s.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	res := MergeEcosystem(ownerID, *snap, batch)
	if res.Total() == 0 {
		return &res, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.entityRepo.CreateContacts(dbc, res.NewContacts); err != nil {
			return err
		}
		if err := s.entityRepo.CreateEvents(dbc, res.NewEvents); err != nil {
			return err
		}
		if err := s.entityRepo.CreateCommunities(dbc, res.NewCommunities); err != nil {
			return err
		}
		if err := s.entityRepo.CreateOrganizations(dbc, res.NewOrganizations); err != nil {
			return err
		}
		if err := s.entityRepo.CreateSkills(dbc, res.NewSkills); err != nil {
			return err
		}
		if err := s.entityRepo.CreateProjects(dbc, res.NewProjects); err != nil {
			return err
		}
		return s.entityRepo.CreateKnowledge(dbc, res.NewKnowledge)
	})
	if err != nil {
		return nil, fmt.Errorf("persist import: %w", err)
	}

	s.log.Info("ecosystem import merged",
		"user_id", ownerID.String(),
		"added", res.Total(),
		"types", len(res.ImportedTypes))
	s.events.Publish(ownerID.String(), "ecosystem.imported", res.ImportedCounts)
	return &res, nil
}

// CreateItem adds a single item through the same merge identity rules
// as a bulk import, so creating an existing name is a silent no-op.
func (s *ecosystemService) CreateItem(ctx context.Context, ownerID uuid.UUID, cat eco.Category, in CreateItemInput) (*MergeResult, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	batch := ImportBatch{}
	item := ImportItem{Name: in.Name, Email: in.Email, URL: in.URL}
	switch cat {
	case eco.CategoryContacts:
		batch.Contacts = []ImportItem{item}
	case eco.CategoryEvents:
		batch.Events = []ImportItem{item}
	case eco.CategoryCommunities:
		batch.Communities = []ImportItem{item}
	case eco.CategoryOrganizations:
		batch.Organizations = []ImportItem{item}
	case eco.CategorySkills:
		batch.Skills = []ImportItem{item}
	case eco.CategoryProjects:
		batch.Projects = []ImportItem{item}
	case eco.CategoryKnowledge:
		batch.Knowledge = []ImportItem{item}
	default:
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, cat)
	}
	return s.Import(ctx, ownerID, batch)
}

func (s *ecosystemService) DeleteItem(ctx context.Context, ownerID uuid.UUID, cat eco.Category, id uuid.UUID) error {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return ErrNotAuthenticated
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		n, err := s.entityRepo.Delete(dbc, cat, ownerID, id)
		if err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		// Edges touching the removed item go with it.
		if _, err := s.relationshipRepo.DeleteByItem(dbc, ownerID, id); err != nil {
			return fmt.Errorf("delete item relationships: %w", err)
		}
		return nil
	})
}

func (s *ecosystemService) CreateRelationship(ctx context.Context, ownerID uuid.UUID, in CreateRelationshipInput) (*types.Relationship, error) {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	if in.SourceID == uuid.Nil || in.TargetID == uuid.Nil {
		return nil, fmt.Errorf("%w: source and target are required", ErrValidation)
	}
	if in.SourceID == in.TargetID {
		return nil, fmt.Errorf("%w: cannot link an item to itself", ErrValidation)
	}

	dbc := dbctx.Context{Ctx: ctx}
	exists, err := s.relationshipRepo.LinkExists(dbc, ownerID, in.SourceID, in.TargetID)
	if err != nil {
		return nil, fmt.Errorf("check relationship: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: relationship already exists", ErrConflict)
	}

	strength := 0.5
	if in.Strength != nil {
		strength = *in.Strength
	}
	row := &types.Relationship{
		ID:               uuid.New(),
		UserID:           ownerID,
		SourceID:         in.SourceID,
		SourceType:       strings.TrimSpace(in.SourceType),
		TargetID:         in.TargetID,
		TargetType:       strings.TrimSpace(in.TargetType),
		RelationshipType: strings.TrimSpace(in.RelationshipType),
		Strength:         strength,
	}
	if _, err := s.relationshipRepo.Create(dbc, []*types.Relationship{row}); err != nil {
		return nil, fmt.Errorf("create relationship: %w", err)
	}
	return row, nil
}

func (s *ecosystemService) UpdateRelationship(ctx context.Context, ownerID, id uuid.UUID, in UpdateRelationshipInput) (*types.Relationship, error) {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: missing relationship id", ErrValidation)
	}

	fields := map[string]interface{}{}
	if in.RelationshipType != nil {
		fields["relationship_type"] = strings.TrimSpace(*in.RelationshipType)
	}
	if in.Strength != nil {
		fields["strength"] = *in.Strength
	}

	dbc := dbctx.Context{Ctx: ctx}
	if len(fields) > 0 {
		n, err := s.relationshipRepo.UpdateFields(dbc, ownerID, id, fields)
		if err != nil {
			return nil, fmt.Errorf("update relationship: %w", err)
		}
		if n == 0 {
			return nil, ErrNotFound
		}
	}

	row, err := s.relationshipRepo.GetByID(dbc, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load relationship: %w", err)
	}
	return row, nil
}

func (s *ecosystemService) DeleteRelationship(ctx context.Context, ownerID, id uuid.UUID) error {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return ErrNotAuthenticated
	}
	n, err := s.relationshipRepo.Delete(dbctx.Context{Ctx: ctx}, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete relationship: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
