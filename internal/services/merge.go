package services

import (
	"strings"

	"github.com/google/uuid"

	types "github.com/cynq/cynq-backend/internal/domain"
	eco "github.com/cynq/cynq-backend/internal/domain/ecosystem"
)

// ImportItem is one candidate row in an import payload. Email is only
// meaningful for contacts, URL only for knowledge items; both are
// ignored elsewhere.
type ImportItem struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// ImportBatch mirrors the client's export payload: one list per
// category, all optional.
type ImportBatch struct {
	Contacts      []ImportItem `json:"contacts"`
	Events        []ImportItem `json:"events"`
	Communities   []ImportItem `json:"communities"`
	Organizations []ImportItem `json:"organizations"`
	Skills        []ImportItem `json:"skills"`
	Projects      []ImportItem `json:"projects"`
	Knowledge     []ImportItem `json:"knowledge"`
}

func (b ImportBatch) items(cat eco.Category) []ImportItem {
	switch cat {
	case eco.CategoryContacts:
		return b.Contacts
	case eco.CategoryEvents:
		return b.Events
	case eco.CategoryCommunities:
		return b.Communities
	case eco.CategoryOrganizations:
		return b.Organizations
	case eco.CategorySkills:
		return b.Skills
	case eco.CategoryProjects:
		return b.Projects
	case eco.CategoryKnowledge:
		return b.Knowledge
	default:
		return nil
	}
}

// Snapshot is one user's full ecosystem state.
type Snapshot struct {
	Contacts      []*types.Contact       `json:"contacts"`
	Events        []*types.Event         `json:"events"`
	Communities   []*types.Community     `json:"communities"`
	Organizations []*types.Organization  `json:"organizations"`
	Skills        []*types.Skill         `json:"skills"`
	Projects      []*types.Project       `json:"projects"`
	Knowledge     []*types.KnowledgeItem `json:"knowledge"`
	Relationships []*types.Relationship  `json:"relationships"`
}

func (s Snapshot) names(cat eco.Category) []string {
	var out []string
	switch cat {
	case eco.CategoryContacts:
		for _, it := range s.Contacts {
			out = append(out, it.Name)
		}
	case eco.CategoryEvents:
		for _, it := range s.Events {
			out = append(out, it.Name)
		}
	case eco.CategoryCommunities:
		for _, it := range s.Communities {
			out = append(out, it.Name)
		}
	case eco.CategoryOrganizations:
		for _, it := range s.Organizations {
			out = append(out, it.Name)
		}
	case eco.CategorySkills:
		for _, it := range s.Skills {
			out = append(out, it.Name)
		}
	case eco.CategoryProjects:
		for _, it := range s.Projects {
			out = append(out, it.Name)
		}
	case eco.CategoryKnowledge:
		for _, it := range s.Knowledge {
			out = append(out, it.Name)
		}
	}
	return out
}

// MergeResult reports what an import added. NewRows holds the rows to
// persist, keyed by category, in input order.
type MergeResult struct {
	ImportedCounts map[eco.Category]int `json:"importedCounts"`
	ImportedTypes  []eco.Category       `json:"importedTypes"`

	NewContacts      []*types.Contact       `json:"-"`
	NewEvents        []*types.Event         `json:"-"`
	NewCommunities   []*types.Community     `json:"-"`
	NewOrganizations []*types.Organization  `json:"-"`
	NewSkills        []*types.Skill         `json:"-"`
	NewProjects      []*types.Project       `json:"-"`
	NewKnowledge     []*types.KnowledgeItem `json:"-"`
}

// Total is the number of rows the merge added across all categories.
func (r MergeResult) Total() int {
	n := 0
	for _, c := range r.ImportedCounts {
		n += c
	}
	return n
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MergeEcosystem merges an import batch into the owner's current
// snapshot. Item identity is the case-folded name within a category:
// known names are skipped silently, novel ones get a fresh id and are
// appended in input order. The merge is pure; running the same batch
// against the resulting state adds nothing.
func MergeEcosystem(ownerID uuid.UUID, current Snapshot, batch ImportBatch) MergeResult {
	res := MergeResult{
		ImportedCounts: make(map[eco.Category]int, len(eco.Categories())),
		ImportedTypes:  []eco.Category{},
	}

	for _, cat := range eco.Categories() {
		seen := make(map[string]struct{})
		for _, name := range current.names(cat) {
			seen[foldName(name)] = struct{}{}
		}

		count := 0
		for _, item := range batch.items(cat) {
			name := strings.TrimSpace(item.Name)
			key := foldName(name)
			if name == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			// A batch can repeat a name too; only the first wins.
			seen[key] = struct{}{}
			appendRow(&res, cat, ownerID, name, item)
			count++
		}

		res.ImportedCounts[cat] = count
		if count > 0 {
			res.ImportedTypes = append(res.ImportedTypes, cat)
		}
	}
	return res
}

func appendRow(res *MergeResult, cat eco.Category, ownerID uuid.UUID, name string, item ImportItem) {
	switch cat {
	case eco.CategoryContacts:
		res.NewContacts = append(res.NewContacts, &types.Contact{
			ID:     uuid.New(),
			UserID: ownerID,
			Name:   name,
			Email:  strings.TrimSpace(item.Email),
		})
	case eco.CategoryEvents:
		res.NewEvents = append(res.NewEvents, &types.Event{
			ID:     uuid.New(),
			UserID: ownerID,
			Name:   name,
		})
	case eco.CategoryCommunities:
		res.NewCommunities = append(res.NewCommunities, &types.Community{
			ID:     uuid.New(),
			UserID: ownerID,
			Name:   name,
		})
	case eco.CategoryOrganizations:
		res.NewOrganizations = append(res.NewOrganizations, &types.Organization{
			ID:     uuid.New(),
			UserID: ownerID,
			Name:   name,
		})
	case eco.CategorySkills:
		res.NewSkills = append(res.NewSkills, &types.Skill{
			ID:     uuid.New(),
			UserID: ownerID,
			Name:   name,
		})
	case eco.CategoryProjects:
		res.NewProjects = append(res.NewProjects, &types.Project{
			ID:     uuid.New(),
			UserID: ownerID,
			Name:   name,
		})
	case eco.CategoryKnowledge:
		res.NewKnowledge = append(res.NewKnowledge, &types.KnowledgeItem{
			ID:     uuid.New(),
			UserID: ownerID,
			Name:   name,
			URL:    strings.TrimSpace(item.URL),
		})
	}
}
