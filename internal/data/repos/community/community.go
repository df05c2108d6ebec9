package community

import (
	"gorm.io/gorm"

	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

type CommunityResourceRepo interface {
	Create(dbc dbctx.Context, rows []*types.CommunityResource) ([]*types.CommunityResource, error)
	List(dbc dbctx.Context, limit int) ([]*types.CommunityResource, error)
}

type communityResourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommunityResourceRepo(db *gorm.DB, log *logger.Logger) CommunityResourceRepo {
	return &communityResourceRepo{db: db, log: log.With("repo", "CommunityResourceRepo")}
}

func (r *communityResourceRepo) Create(dbc dbctx.Context, rows []*types.CommunityResource) ([]*types.CommunityResource, error) {
	if len(rows) == 0 {
		return []*types.CommunityResource{}, nil
	}
	txx := dbc.DB(r.db)
	if err := txx.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *communityResourceRepo) List(dbc dbctx.Context, limit int) ([]*types.CommunityResource, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.DB(r.db)
	var out []*types.CommunityResource
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.CommunityResource{}).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type AnonymizedInsightRepo interface {
	Create(dbc dbctx.Context, rows []*types.AnonymizedInsight) ([]*types.AnonymizedInsight, error)
	List(dbc dbctx.Context, limit int) ([]*types.AnonymizedInsight, error)
}

type anonymizedInsightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnonymizedInsightRepo(db *gorm.DB, log *logger.Logger) AnonymizedInsightRepo {
	return &anonymizedInsightRepo{db: db, log: log.With("repo", "AnonymizedInsightRepo")}
}

func (r *anonymizedInsightRepo) Create(dbc dbctx.Context, rows []*types.AnonymizedInsight) ([]*types.AnonymizedInsight, error) {
	if len(rows) == 0 {
		return []*types.AnonymizedInsight{}, nil
	}
	txx := dbc.DB(r.db)
	if err := txx.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *anonymizedInsightRepo) List(dbc dbctx.Context, limit int) ([]*types.AnonymizedInsight, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.DB(r.db)
	var out []*types.AnonymizedInsight
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.AnonymizedInsight{}).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
