package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cynq/cynq-backend/internal/data/repos"
	types "github.com/cynq/cynq-backend/internal/domain"
	"github.com/cynq/cynq-backend/internal/pkg/ctxutil"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

const insightListLimit = 50

// CommunityService serves the shared, unscoped data: curated resources
// and anonymized insights. Insights are stored without any owner
// reference on purpose.
type CommunityService interface {
	ListResources(ctx context.Context) ([]*types.CommunityResource, error)
	ListInsights(ctx context.Context) ([]*types.AnonymizedInsight, error)
	ShareInsight(ctx context.Context, text string) (*types.AnonymizedInsight, error)
}

type communityService struct {
	db           *gorm.DB
	log          *logger.Logger
	resourceRepo repos.CommunityResourceRepo
	insightRepo  repos.AnonymizedInsightRepo
}

func NewCommunityService(
	db *gorm.DB,
	log *logger.Logger,
	resourceRepo repos.CommunityResourceRepo,
	insightRepo repos.AnonymizedInsightRepo,
) CommunityService {
	return &communityService{
		db:           db,
		log:          log.With("service", "CommunityService"),
		resourceRepo: resourceRepo,
		insightRepo:  insightRepo,
	}
}

func (s *communityService) ListResources(ctx context.Context) ([]*types.CommunityResource, error) {
	ctx = ctxutil.Default(ctx)
	out, err := s.resourceRepo.List(dbctx.Context{Ctx: ctx}, 0)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return out, nil
}

func (s *communityService) ListInsights(ctx context.Context) ([]*types.AnonymizedInsight, error) {
	ctx = ctxutil.Default(ctx)
	out, err := s.insightRepo.List(dbctx.Context{Ctx: ctx}, insightListLimit)
	if err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}
	return out, nil
}

func (s *communityService) ShareInsight(ctx context.Context, text string) (*types.AnonymizedInsight, error) {
	ctx = ctxutil.Default(ctx)
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}

	row := &types.AnonymizedInsight{
		ID:   uuid.New(),
		Text: text,
	}
	if _, err := s.insightRepo.Create(dbctx.Context{Ctx: ctx}, []*types.AnonymizedInsight{row}); err != nil {
		return nil, fmt.Errorf("share insight: %w", err)
	}
	return row, nil
}
