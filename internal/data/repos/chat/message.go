package chat

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

type ChatMessageRepo interface {
	Create(dbc dbctx.Context, rows []*types.ChatMessage) ([]*types.ChatMessage, error)
	ListBySession(dbc dbctx.Context, sessionID uuid.UUID, limit int) ([]*types.ChatMessage, error)
	ListRecent(dbc dbctx.Context, sessionID uuid.UUID, limit int) ([]*types.ChatMessage, error)
	DeleteBySession(dbc dbctx.Context, sessionID uuid.UUID) (int64, error)
}

type chatMessageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatMessageRepo(db *gorm.DB, log *logger.Logger) ChatMessageRepo {
	return &chatMessageRepo{db: db, log: log.With("repo", "ChatMessageRepo")}
}

func (r *chatMessageRepo) Create(dbc dbctx.Context, rows []*types.ChatMessage) ([]*types.ChatMessage, error) {
	if len(rows) == 0 {
		return []*types.ChatMessage{}, nil
	}
	txx := dbc.DB(r.db)
	if err := txx.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListBySession returns the session transcript oldest first. A limit
// of zero or less returns the whole transcript.
func (r *chatMessageRepo) ListBySession(dbc dbctx.Context, sessionID uuid.UUID, limit int) ([]*types.ChatMessage, error) {
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("missing session_id")
	}
	txx := dbc.DB(r.db)
	q := txx.WithContext(dbc.Ctx).
		Model(&types.ChatMessage{}).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []*types.ChatMessage
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListRecent returns the newest messages oldest first, for prompt
// assembly with a bounded window.
func (r *chatMessageRepo) ListRecent(dbc dbctx.Context, sessionID uuid.UUID, limit int) ([]*types.ChatMessage, error) {
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("missing session_id")
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	txx := dbc.DB(r.db)
	var newest []*types.ChatMessage
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.ChatMessage{}).
		Where("session_id = ?", sessionID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&newest).Error; err != nil {
		return nil, err
	}
	out := make([]*types.ChatMessage, len(newest))
	for i, m := range newest {
		out[len(newest)-1-i] = m
	}
	return out, nil
}

func (r *chatMessageRepo) DeleteBySession(dbc dbctx.Context, sessionID uuid.UUID) (int64, error) {
	if sessionID == uuid.Nil {
		return 0, fmt.Errorf("missing session_id")
	}
	txx := dbc.DB(r.db)
	res := txx.WithContext(dbc.Ctx).
		Where("session_id = ?", sessionID).
		Delete(&types.ChatMessage{})
	return res.RowsAffected, res.Error
}
