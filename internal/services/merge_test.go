package services

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/cynq/cynq-backend/internal/domain"
	eco "github.com/cynq/cynq-backend/internal/domain/ecosystem"
)

func TestMergeEcosystem_AddsNovelItemsInInputOrder(t *testing.T) {
	owner := uuid.New()
	batch := ImportBatch{
		Contacts: []ImportItem{
			{Name: "Ann", Email: "ann@example.com"},
			{Name: "Bob"},
		},
		Skills: []ImportItem{{Name: "Grant Writing"}},
	}

	res := MergeEcosystem(owner, Snapshot{}, batch)

	if res.Total() != 3 {
		t.Fatalf("expected total=3 got %d", res.Total())
	}
	if len(res.NewContacts) != 2 {
		t.Fatalf("expected 2 new contacts, got %d", len(res.NewContacts))
	}
	if res.NewContacts[0].Name != "Ann" || res.NewContacts[1].Name != "Bob" {
		t.Fatalf("input order not preserved: %q, %q", res.NewContacts[0].Name, res.NewContacts[1].Name)
	}
	if res.NewContacts[0].Email != "ann@example.com" {
		t.Fatalf("email not carried: %q", res.NewContacts[0].Email)
	}
	if res.NewContacts[0].UserID != owner {
		t.Fatalf("owner not stamped on new rows")
	}
	if res.ImportedCounts[eco.CategoryContacts] != 2 || res.ImportedCounts[eco.CategorySkills] != 1 {
		t.Fatalf("unexpected counts: %v", res.ImportedCounts)
	}
}

func TestMergeEcosystem_SkipsKnownNamesCaseInsensitively(t *testing.T) {
	owner := uuid.New()
	current := Snapshot{
		Contacts: []*types.Contact{{ID: uuid.New(), UserID: owner, Name: "Ann"}},
	}
	batch := ImportBatch{
		Contacts: []ImportItem{
			{Name: "ann"},
			{Name: "  ANN  "},
			{Name: "Bob"},
		},
	}

	res := MergeEcosystem(owner, current, batch)

	if res.ImportedCounts[eco.CategoryContacts] != 1 {
		t.Fatalf("expected 1 new contact got %d", res.ImportedCounts[eco.CategoryContacts])
	}
	if res.NewContacts[0].Name != "Bob" {
		t.Fatalf("expected Bob, got %q", res.NewContacts[0].Name)
	}
}

func TestMergeEcosystem_DeduplicatesWithinBatchFirstWins(t *testing.T) {
	owner := uuid.New()
	batch := ImportBatch{
		Projects: []ImportItem{
			{Name: "Pilot Study"},
			{Name: "pilot study"},
		},
	}

	res := MergeEcosystem(owner, Snapshot{}, batch)

	if len(res.NewProjects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(res.NewProjects))
	}
	if res.NewProjects[0].Name != "Pilot Study" {
		t.Fatalf("first occurrence should win, got %q", res.NewProjects[0].Name)
	}
}

func TestMergeEcosystem_IgnoresBlankNames(t *testing.T) {
	res := MergeEcosystem(uuid.New(), Snapshot{}, ImportBatch{
		Events: []ImportItem{{Name: "   "}, {Name: ""}},
	})
	if res.Total() != 0 {
		t.Fatalf("blank names must not import, got total=%d", res.Total())
	}
	if len(res.ImportedTypes) != 0 {
		t.Fatalf("expected no imported types, got %v", res.ImportedTypes)
	}
}

func TestMergeEcosystem_IsIdempotent(t *testing.T) {
	owner := uuid.New()
	batch := ImportBatch{
		Contacts:  []ImportItem{{Name: "Ann"}},
		Knowledge: []ImportItem{{Name: "FDA 510(k) guide", URL: "https://example.com"}},
	}

	first := MergeEcosystem(owner, Snapshot{}, batch)
	if first.Total() != 2 {
		t.Fatalf("expected 2 on first merge, got %d", first.Total())
	}

	// Re-running the same batch against the resulting state adds nothing.
	after := Snapshot{
		Contacts:  first.NewContacts,
		Knowledge: first.NewKnowledge,
	}
	second := MergeEcosystem(owner, after, batch)
	if second.Total() != 0 {
		t.Fatalf("expected idempotent merge, got total=%d", second.Total())
	}
}

func TestMergeEcosystem_ImportedTypesFollowCategoryOrder(t *testing.T) {
	res := MergeEcosystem(uuid.New(), Snapshot{}, ImportBatch{
		Knowledge: []ImportItem{{Name: "k"}},
		Contacts:  []ImportItem{{Name: "c"}},
		Skills:    []ImportItem{{Name: "s"}},
	})

	want := []eco.Category{eco.CategoryContacts, eco.CategorySkills, eco.CategoryKnowledge}
	if len(res.ImportedTypes) != len(want) {
		t.Fatalf("expected %v got %v", want, res.ImportedTypes)
	}
	for i := range want {
		if res.ImportedTypes[i] != want[i] {
			t.Fatalf("expected %v got %v", want, res.ImportedTypes)
		}
	}
}
