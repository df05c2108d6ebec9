package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

type UserTokenRepo interface {
	Create(dbc dbctx.Context, rows []*types.UserToken) ([]*types.UserToken, error)
	GetByRefreshToken(dbc dbctx.Context, refreshToken string) (*types.UserToken, error)
	DeleteByRefreshToken(dbc dbctx.Context, refreshToken string) error
	DeleteByUser(dbc dbctx.Context, userID uuid.UUID) error
	DeleteExpired(dbc dbctx.Context, now time.Time) (int64, error)
}

type userTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, log *logger.Logger) UserTokenRepo {
	return &userTokenRepo{db: db, log: log.With("repo", "UserTokenRepo")}
}

func (r *userTokenRepo) Create(dbc dbctx.Context, rows []*types.UserToken) ([]*types.UserToken, error) {
	if len(rows) == 0 {
		return []*types.UserToken{}, nil
	}
	txx := dbc.DB(r.db)
	if err := txx.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userTokenRepo) GetByRefreshToken(dbc dbctx.Context, refreshToken string) (*types.UserToken, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("missing refresh_token")
	}
	txx := dbc.DB(r.db)
	var out types.UserToken
	if err := txx.WithContext(dbc.Ctx).
		Where("refresh_token = ?", refreshToken).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userTokenRepo) DeleteByRefreshToken(dbc dbctx.Context, refreshToken string) error {
	if refreshToken == "" {
		return fmt.Errorf("missing refresh_token")
	}
	txx := dbc.DB(r.db)
	return txx.WithContext(dbc.Ctx).
		Where("refresh_token = ?", refreshToken).
		Delete(&types.UserToken{}).Error
}

func (r *userTokenRepo) DeleteByUser(dbc dbctx.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("missing user_id")
	}
	txx := dbc.DB(r.db)
	return txx.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Delete(&types.UserToken{}).Error
}

func (r *userTokenRepo) DeleteExpired(dbc dbctx.Context, now time.Time) (int64, error) {
	txx := dbc.DB(r.db)
	res := txx.WithContext(dbc.Ctx).
		Where("expires_at < ?", now).
		Delete(&types.UserToken{})
	return res.RowsAffected, res.Error
}
