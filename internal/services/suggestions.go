package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cynq/cynq-backend/internal/data/repos"
	"github.com/cynq/cynq-backend/internal/llm"
	"github.com/cynq/cynq-backend/internal/pkg/ctxutil"
	"github.com/cynq/cynq-backend/internal/pkg/dbctx"
	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

// RelationshipSuggestion is one proposed link between two ecosystem
// items, by name. The client resolves names to ids before creating the
// relationship.
type RelationshipSuggestion struct {
	SourceName string `json:"sourceName"`
	TargetName string `json:"targetName"`
	Type       string `json:"type"`
	Reason     string `json:"reason"`
}

type SuggestionService interface {
	SuggestRelationships(ctx context.Context, ownerID, sessionID uuid.UUID, profile string) ([]RelationshipSuggestion, error)
}

type suggestionService struct {
	db          *gorm.DB
	log         *logger.Logger
	sessionRepo repos.ChatSessionRepo
	ecosystem   EcosystemService
	engine      llm.Engine
}

func NewSuggestionService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.ChatSessionRepo,
	ecosystem EcosystemService,
	engine llm.Engine,
) SuggestionService {
	return &suggestionService{
		db:          db,
		log:         log.With("service", "SuggestionService"),
		sessionRepo: sessionRepo,
		ecosystem:   ecosystem,
		engine:      engine,
	}
}

var suggestionSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"suggestions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"sourceName": map[string]any{"type": "string"},
					"targetName": map[string]any{"type": "string"},
					"type":       map[string]any{"type": "string"},
					"reason":     map[string]any{"type": "string"},
				},
				"required": []string{"sourceName", "targetName", "type", "reason"},
			},
		},
	},
	"required": []string{"suggestions"},
}

func (s *suggestionService) SuggestRelationships(ctx context.Context, ownerID, sessionID uuid.UUID, profile string) ([]RelationshipSuggestion, error) {
	ctx = ctxutil.Default(ctx)
	if ownerID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	session, err := s.sessionRepo.GetByIDForUser(dbctx.Context{Ctx: ctx}, sessionID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	snap, err := s.ecosystem.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("Suggest relationships between items in this personal ecosystem.\n")
	if strings.TrimSpace(profile) != "" {
		sb.WriteString("Profile context: ")
		sb.WriteString(strings.TrimSpace(profile))
		sb.WriteString("\n")
	}
	var contacts, orgs, projects, skills []string
	for _, it := range snap.Contacts {
		contacts = append(contacts, it.Name)
	}
	for _, it := range snap.Organizations {
		orgs = append(orgs, it.Name)
	}
	for _, it := range snap.Projects {
		projects = append(projects, it.Name)
	}
	for _, it := range snap.Skills {
		skills = append(skills, it.Name)
	}
	writeList(&sb, "Contacts", contacts)
	writeList(&sb, "Organizations", orgs)
	writeList(&sb, "Projects", projects)
	writeList(&sb, "Skills", skills)

	text, err := s.engine.GenerateText(ctx, llm.ResolveModel(session.Model), []llm.Message{
		{Role: "system", Content: "You propose useful links between items in a user's ecosystem. Only reference item names that appear in the prompt."},
		{Role: "user", Content: sb.String()},
	}, llm.GenerateOptions{
		Temperature: 0.2,
		JSONSchema: &llm.JSONSchema{
			Name:   "relationship_suggestions",
			Schema: suggestionSchema,
			Strict: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var out struct {
		Suggestions []RelationshipSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("%w: malformed suggestions payload", ErrUpstream)
	}
	if out.Suggestions == nil {
		out.Suggestions = []RelationshipSuggestion{}
	}
	return out.Suggestions, nil
}

func writeList(sb *strings.Builder, label string, names []string) {
	if len(names) == 0 {
		return
	}
	sb.WriteString(label)
	sb.WriteString(": ")
	sb.WriteString(strings.Join(names, "; "))
	sb.WriteString("\n")
}
