package domain

import (
	"github.com/cynq/cynq-backend/internal/domain/chat"
	"github.com/cynq/cynq-backend/internal/domain/community"
	"github.com/cynq/cynq-backend/internal/domain/ecosystem"
	"github.com/cynq/cynq-backend/internal/domain/user"
)

type User = user.User
type UserToken = user.UserToken

type ChatSession = chat.ChatSession
type ChatMessage = chat.ChatMessage

type Contact = ecosystem.Contact
type Event = ecosystem.Event
type Community = ecosystem.Community
type Organization = ecosystem.Organization
type Skill = ecosystem.Skill
type Project = ecosystem.Project
type KnowledgeItem = ecosystem.KnowledgeItem
type Relationship = ecosystem.Relationship
type CriticalPath = ecosystem.CriticalPath
type CriticalPathPhase = ecosystem.CriticalPathPhase
type CriticalPathTask = ecosystem.CriticalPathTask

type CommunityResource = community.CommunityResource
type AnonymizedInsight = community.AnonymizedInsight

// AllModels is the migration set, ordered so referenced tables migrate
// before the tables that point at them.
func AllModels() []any {
	return []any{
		&User{},
		&UserToken{},
		&ChatSession{},
		&ChatMessage{},
		&Contact{},
		&Event{},
		&Community{},
		&Organization{},
		&Skill{},
		&Project{},
		&KnowledgeItem{},
		&Relationship{},
		&CriticalPath{},
		&CriticalPathPhase{},
		&CriticalPathTask{},
		&CommunityResource{},
		&AnonymizedInsight{},
	}
}
