package memory

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"notehive/internal/domain/note"
)

func seedNote(t *testing.T, r *NoteRepository, id, workspaceID string, noteType note.Type, tags []string, body string) *note.Note {
	t.Helper()
	field, err := json.Marshal(map[string]string{"content": body})
	if err != nil {
		t.Fatalf("marshal field: %v", err)
	}
	n := &note.Note{
		ID:          id,
		UserID:      "u1",
		WorkspaceID: workspaceID,
		Fields:      []json.RawMessage{field},
		NoteType:    noteType,
		Tags:        tags,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := r.CreateNote(n); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	return n
}

func TestFindByWorkspaceFilters(t *testing.T) {
	r := NewNoteRepository()
	seedNote(t, r, "n1", "ws-1", note.TypeContent, []string{"work"}, "quarterly planning")
	seedNote(t, r, "n2", "ws-1", note.TypeTemplate, []string{"recipes"}, "pasta carbonara")
	seedNote(t, r, "n3", "ws-2", note.TypeContent, []string{"work"}, "other workspace")

	all, err := r.FindByWorkspace("ws-1", note.Filter{})
	if err != nil {
		t.Fatalf("FindByWorkspace failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 notes in ws-1, got %d", len(all))
	}

	byType, _ := r.FindByWorkspace("ws-1", note.Filter{NoteType: note.TypeTemplate})
	if len(byType) != 1 || byType[0].ID != "n2" {
		t.Errorf("type filter: expected only n2, got %v", byType)
	}

	byTag, _ := r.FindByWorkspace("ws-1", note.Filter{Tags: []string{"work", "missing"}})
	if len(byTag) != 1 || byTag[0].ID != "n1" {
		t.Errorf("tag filter: expected only n1, got %v", byTag)
	}

	// Query matching is case-insensitive over field content
	byQuery, _ := r.FindByWorkspace("ws-1", note.Filter{Query: "CARBONARA"})
	if len(byQuery) != 1 || byQuery[0].ID != "n2" {
		t.Errorf("query filter: expected only n2, got %v", byQuery)
	}
}

func TestDistinctTags(t *testing.T) {
	r := NewNoteRepository()
	seedNote(t, r, "n1", "ws-1", note.TypeContent, []string{"b", "a"}, "one")
	seedNote(t, r, "n2", "ws-1", note.TypeContent, []string{"a", "c"}, "two")
	seedNote(t, r, "n3", "ws-2", note.TypeContent, []string{"z"}, "elsewhere")

	tags, err := r.DistinctTags("ws-1")
	if err != nil {
		t.Fatalf("DistinctTags failed: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("expected %v, got %v", want, tags)
			break
		}
	}
}

func TestDeleteByWorkspace(t *testing.T) {
	r := NewNoteRepository()
	seedNote(t, r, "n1", "ws-1", note.TypeContent, nil, "one")
	seedNote(t, r, "n2", "ws-1", note.TypeContent, nil, "two")
	survivor := seedNote(t, r, "n3", "ws-2", note.TypeContent, nil, "keep")

	if err := r.DeleteByWorkspace("ws-1"); err != nil {
		t.Fatalf("DeleteByWorkspace failed: %v", err)
	}

	if _, err := r.GetNote("n1"); !errors.Is(err, note.ErrNoteNotFound) {
		t.Errorf("n1 should be gone, got %v", err)
	}
	if _, err := r.GetNote(survivor.ID); err != nil {
		t.Errorf("note in another workspace must survive: %v", err)
	}
}
