package ecosystem

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/cynq/cynq-backend/internal/domain"
	eco "github.com/cynq/cynq-backend/internal/domain/ecosystem"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

// EntityRepo covers the seven ecosystem item tables. The typed list and
// create methods exist per category; cross-category updates and deletes
// go through the table name resolved from the category.
type EntityRepo interface {
	ListContacts(dbc dbctx.Context, userID uuid.UUID) ([]*types.Contact, error)
	ListEvents(dbc dbctx.Context, userID uuid.UUID) ([]*types.Event, error)
	ListCommunities(dbc dbctx.Context, userID uuid.UUID) ([]*types.Community, error)
	ListOrganizations(dbc dbctx.Context, userID uuid.UUID) ([]*types.Organization, error)
	ListSkills(dbc dbctx.Context, userID uuid.UUID) ([]*types.Skill, error)
	ListProjects(dbc dbctx.Context, userID uuid.UUID) ([]*types.Project, error)
	ListKnowledge(dbc dbctx.Context, userID uuid.UUID) ([]*types.KnowledgeItem, error)

	CreateContacts(dbc dbctx.Context, rows []*types.Contact) error
	CreateEvents(dbc dbctx.Context, rows []*types.Event) error
	CreateCommunities(dbc dbctx.Context, rows []*types.Community) error
	CreateOrganizations(dbc dbctx.Context, rows []*types.Organization) error
	CreateSkills(dbc dbctx.Context, rows []*types.Skill) error
	CreateProjects(dbc dbctx.Context, rows []*types.Project) error
	CreateKnowledge(dbc dbctx.Context, rows []*types.KnowledgeItem) error

	UpdateFields(dbc dbctx.Context, cat eco.Category, userID, id uuid.UUID, updates map[string]interface{}) (int64, error)
	Delete(dbc dbctx.Context, cat eco.Category, userID, id uuid.UUID) (int64, error)
	Counts(dbc dbctx.Context, userID uuid.UUID) (map[eco.Category]int64, error)
}

type entityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEntityRepo(db *gorm.DB, log *logger.Logger) EntityRepo {
	return &entityRepo{db: db, log: log.With("repo", "EntityRepo")}
}

func tableFor(cat eco.Category) (string, error) {
	switch cat {
	case eco.CategoryContacts:
		return types.Contact{}.TableName(), nil
	case eco.CategoryEvents:
		return types.Event{}.TableName(), nil
	case eco.CategoryCommunities:
		return types.Community{}.TableName(), nil
	case eco.CategoryOrganizations:
		return types.Organization{}.TableName(), nil
	case eco.CategorySkills:
		return types.Skill{}.TableName(), nil
	case eco.CategoryProjects:
		return types.Project{}.TableName(), nil
	case eco.CategoryKnowledge:
		return types.KnowledgeItem{}.TableName(), nil
	default:
		return "", fmt.Errorf("unknown category %q", cat)
	}
}

func listOwned[T any](r *entityRepo, dbc dbctx.Context, userID uuid.UUID) ([]*T, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("missing user_id")
	}
	txx := dbc.DB(r.db)
	var out []*T
	if err := txx.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func createRows[T any](r *entityRepo, dbc dbctx.Context, rows []*T) error {
	if len(rows) == 0 {
		return nil
	}
	txx := dbc.DB(r.db)
	return txx.WithContext(dbc.Ctx).Create(&rows).Error
}

func (r *entityRepo) ListContacts(dbc dbctx.Context, userID uuid.UUID) ([]*types.Contact, error) {
	return listOwned[types.Contact](r, dbc, userID)
}

func (r *entityRepo) ListEvents(dbc dbctx.Context, userID uuid.UUID) ([]*types.Event, error) {
	return listOwned[types.Event](r, dbc, userID)
}

func (r *entityRepo) ListCommunities(dbc dbctx.Context, userID uuid.UUID) ([]*types.Community, error) {
	return listOwned[types.Community](r, dbc, userID)
}

func (r *entityRepo) ListOrganizations(dbc dbctx.Context, userID uuid.UUID) ([]*types.Organization, error) {
	return listOwned[types.Organization](r, dbc, userID)
}

func (r *entityRepo) ListSkills(dbc dbctx.Context, userID uuid.UUID) ([]*types.Skill, error) {
	return listOwned[types.Skill](r, dbc, userID)
}

func (r *entityRepo) ListProjects(dbc dbctx.Context, userID uuid.UUID) ([]*types.Project, error) {
	return listOwned[types.Project](r, dbc, userID)
}

func (r *entityRepo) ListKnowledge(dbc dbctx.Context, userID uuid.UUID) ([]*types.KnowledgeItem, error) {
	return listOwned[types.KnowledgeItem](r, dbc, userID)
}

func (r *entityRepo) CreateContacts(dbc dbctx.Context, rows []*types.Contact) error {
	return createRows(r, dbc, rows)
}

func (r *entityRepo) CreateEvents(dbc dbctx.Context, rows []*types.Event) error {
	return createRows(r, dbc, rows)
}

func (r *entityRepo) CreateCommunities(dbc dbctx.Context, rows []*types.Community) error {
	return createRows(r, dbc, rows)
}

func (r *entityRepo) CreateOrganizations(dbc dbctx.Context, rows []*types.Organization) error {
	return createRows(r, dbc, rows)
}

func (r *entityRepo) CreateSkills(dbc dbctx.Context, rows []*types.Skill) error {
	return createRows(r, dbc, rows)
}

func (r *entityRepo) CreateProjects(dbc dbctx.Context, rows []*types.Project) error {
	return createRows(r, dbc, rows)
}

func (r *entityRepo) CreateKnowledge(dbc dbctx.Context, rows []*types.KnowledgeItem) error {
	return createRows(r, dbc, rows)
}

func (r *entityRepo) UpdateFields(dbc dbctx.Context, cat eco.Category, userID, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return 0, fmt.Errorf("missing id")
	}
	if len(updates) == 0 {
		return 0, nil
	}
	table, err := tableFor(cat)
	if err != nil {
		return 0, err
	}
	txx := dbc.DB(r.db)
	res := txx.WithContext(dbc.Ctx).
		Table(table).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *entityRepo) Delete(dbc dbctx.Context, cat eco.Category, userID, id uuid.UUID) (int64, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return 0, fmt.Errorf("missing id")
	}
	table, err := tableFor(cat)
	if err != nil {
		return 0, err
	}
	txx := dbc.DB(r.db)
	res := txx.WithContext(dbc.Ctx).
		Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND user_id = ?`, table), id, userID)
	return res.RowsAffected, res.Error
}

func (r *entityRepo) Counts(dbc dbctx.Context, userID uuid.UUID) (map[eco.Category]int64, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("missing user_id")
	}
	txx := dbc.DB(r.db)
	out := make(map[eco.Category]int64, len(eco.Categories()))
	for _, cat := range eco.Categories() {
		table, err := tableFor(cat)
		if err != nil {
			return nil, err
		}
		var n int64
		if err := txx.WithContext(dbc.Ctx).
			Table(table).
			Where("user_id = ?", userID).
			Count(&n).Error; err != nil {
			return nil, err
		}
		out[cat] = n
	}
	return out, nil
}
