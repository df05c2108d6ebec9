package repos

import (
	"gorm.io/gorm"

	"github.com/cynq/cynq-backend/internal/data/repos/chat"
	"github.com/cynq/cynq-backend/internal/data/repos/community"
	"github.com/cynq/cynq-backend/internal/data/repos/ecosystem"
	"github.com/cynq/cynq-backend/internal/data/repos/user"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = user.UserTokenRepo

type ChatSessionRepo = chat.ChatSessionRepo
type ChatMessageRepo = chat.ChatMessageRepo

type EntityRepo = ecosystem.EntityRepo
type RelationshipRepo = ecosystem.RelationshipRepo
type CriticalPathRepo = ecosystem.CriticalPathRepo

type CommunityResourceRepo = community.CommunityResourceRepo
type AnonymizedInsightRepo = community.AnonymizedInsightRepo

// All bundles every repo behind one constructor for app wiring.
type All struct {
	User      UserRepo
	UserToken UserTokenRepo

	ChatSession ChatSessionRepo
	ChatMessage ChatMessageRepo

	Entity       EntityRepo
	Relationship RelationshipRepo
	CriticalPath CriticalPathRepo

	CommunityResource CommunityResourceRepo
	AnonymizedInsight AnonymizedInsightRepo
}

func New(db *gorm.DB, log *logger.Logger) *All {
	return &All{
		User:      user.NewUserRepo(db, log),
		UserToken: user.NewUserTokenRepo(db, log),

		ChatSession: chat.NewChatSessionRepo(db, log),
		ChatMessage: chat.NewChatMessageRepo(db, log),

		Entity:       ecosystem.NewEntityRepo(db, log),
		Relationship: ecosystem.NewRelationshipRepo(db, log),
		CriticalPath: ecosystem.NewCriticalPathRepo(db, log),

		CommunityResource: community.NewCommunityResourceRepo(db, log),
		AnonymizedInsight: community.NewAnonymizedInsightRepo(db, log),
	}
}
