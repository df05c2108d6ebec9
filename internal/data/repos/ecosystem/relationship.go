package ecosystem

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

type RelationshipRepo interface {
	Create(dbc dbctx.Context, rows []*types.Relationship) ([]*types.Relationship, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Relationship, error)
	LinkExists(dbc dbctx.Context, userID, sourceID, targetID uuid.UUID) (bool, error)
	GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.Relationship, error)
	UpdateFields(dbc dbctx.Context, userID, id uuid.UUID, fields map[string]interface{}) (int64, error)
	Delete(dbc dbctx.Context, userID, id uuid.UUID) (int64, error)
	DeleteByItem(dbc dbctx.Context, userID, itemID uuid.UUID) (int64, error)
}

type relationshipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelationshipRepo(db *gorm.DB, log *logger.Logger) RelationshipRepo {
	return &relationshipRepo{db: db, log: log.With("repo", "RelationshipRepo")}
}

func (r *relationshipRepo) Create(dbc dbctx.Context, rows []*types.Relationship) ([]*types.Relationship, error) {
	if len(rows) == 0 {
		return []*types.Relationship{}, nil
	}
	txx := dbc.DB(r.db)
	if err := txx.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *relationshipRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Relationship, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("missing user_id")
	}
	txx := dbc.DB(r.db)
	var out []*types.Relationship
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.Relationship{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// LinkExists treats (source,target) and (target,source) as the same
// edge.
func (r *relationshipRepo) LinkExists(dbc dbctx.Context, userID, sourceID, targetID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, fmt.Errorf("missing user_id")
	}
	txx := dbc.DB(r.db)
	var n int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.Relationship{}).
		Where("user_id = ?", userID).
		Where("(source_id = ? AND target_id = ?) OR (source_id = ? AND target_id = ?)",
			sourceID, targetID, targetID, sourceID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *relationshipRepo) GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.Relationship, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	txx := dbc.DB(r.db)
	var row types.Relationship
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *relationshipRepo) UpdateFields(dbc dbctx.Context, userID, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return 0, fmt.Errorf("missing id")
	}
	if len(fields) == 0 {
		return 0, nil
	}
	txx := dbc.DB(r.db)
	res := txx.WithContext(dbc.Ctx).
		Model(&types.Relationship{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *relationshipRepo) Delete(dbc dbctx.Context, userID, id uuid.UUID) (int64, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return 0, fmt.Errorf("missing id")
	}
	txx := dbc.DB(r.db)
	res := txx.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.Relationship{})
	return res.RowsAffected, res.Error
}

// DeleteByItem removes every edge touching the item, in either
// direction. Used when the item itself is deleted.
func (r *relationshipRepo) DeleteByItem(dbc dbctx.Context, userID, itemID uuid.UUID) (int64, error) {
	if userID == uuid.Nil || itemID == uuid.Nil {
		return 0, fmt.Errorf("missing id")
	}
	txx := dbc.DB(r.db)
	res := txx.WithContext(dbc.Ctx).
		Where("user_id = ? AND (source_id = ? OR target_id = ?)", userID, itemID, itemID).
		Delete(&types.Relationship{})
	return res.RowsAffected, res.Error
}
