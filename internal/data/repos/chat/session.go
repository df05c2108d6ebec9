package chat

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

type ChatSessionRepo interface {
	Create(dbc dbctx.Context, rows []*types.ChatSession) ([]*types.ChatSession, error)
	GetByIDForUser(dbc dbctx.Context, id, userID uuid.UUID) (*types.ChatSession, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.ChatSession, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id, userID uuid.UUID) (int64, error)
}

type chatSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatSessionRepo(db *gorm.DB, log *logger.Logger) ChatSessionRepo {
	return &chatSessionRepo{db: db, log: log.With("repo", "ChatSessionRepo")}
}

func (r *chatSessionRepo) Create(dbc dbctx.Context, rows []*types.ChatSession) ([]*types.ChatSession, error) {
	if len(rows) == 0 {
		return []*types.ChatSession{}, nil
	}
	txx := dbc.DB(r.db)
	if err := txx.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *chatSessionRepo) GetByIDForUser(dbc dbctx.Context, id, userID uuid.UUID) (*types.ChatSession, error) {
	if id == uuid.Nil || userID == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	txx := dbc.DB(r.db)
	var out types.ChatSession
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *chatSessionRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.ChatSession, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("missing user_id")
	}
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	txx := dbc.DB(r.db)
	var out []*types.ChatSession
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.ChatSession{}).
		Where("user_id = ?", userID).
		Order("last_active DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *chatSessionRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	if len(updates) == 0 {
		return nil
	}
	txx := dbc.DB(r.db)
	return txx.WithContext(dbc.Ctx).
		Model(&types.ChatSession{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *chatSessionRepo) Delete(dbc dbctx.Context, id, userID uuid.UUID) (int64, error) {
	if id == uuid.Nil || userID == uuid.Nil {
		return 0, fmt.Errorf("missing id")
	}
	txx := dbc.DB(r.db)
	res := txx.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.ChatSession{})
	return res.RowsAffected, res.Error
}
