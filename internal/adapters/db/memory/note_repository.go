package memory

import (
	"sort"
	"strings"
	"sync"

	"notehive/internal/domain/note"
)

// NoteRepository is an in-memory implementation of the note repository
type NoteRepository struct {
	mu    sync.RWMutex
	notes map[string]*note.Note // noteID -> Note
}

// NewNoteRepository creates a new in-memory note repository
func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: make(map[string]*note.Note)}
}

// GetNote retrieves a note by ID
func (r *NoteRepository) GetNote(id string) (*note.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, exists := r.notes[id]
	if !exists {
		return nil, note.ErrNoteNotFound
	}
	return n, nil
}

// CreateNote creates a new note
func (r *NoteRepository) CreateNote(n *note.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notes[n.ID] = n
	return nil
}

// UpdateNote updates an existing note
func (r *NoteRepository) UpdateNote(n *note.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[n.ID]; !exists {
		return note.ErrNoteNotFound
	}
	r.notes[n.ID] = n
	return nil
}

// DeleteNote deletes a note
func (r *NoteRepository) DeleteNote(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[id]; !exists {
		return note.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

// FindByWorkspace retrieves the workspace's notes matching the filter,
// newest first
func (r *NoteRepository) FindByWorkspace(workspaceID string, f note.Filter) ([]*note.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*note.Note, 0)
	for _, n := range r.notes {
		if n.WorkspaceID != workspaceID {
			continue
		}
		if !matches(n, f) {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// DistinctTags retrieves the distinct tags used by the workspace's notes
func (r *NoteRepository) DistinctTags(workspaceID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, n := range r.notes {
		if n.WorkspaceID != workspaceID {
			continue
		}
		for _, tag := range n.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// DeleteByWorkspace deletes all notes in a workspace
func (r *NoteRepository) DeleteByWorkspace(workspaceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, n := range r.notes {
		if n.WorkspaceID == workspaceID {
			delete(r.notes, id)
		}
	}
	return nil
}

// DeleteByUser deletes all notes owned by a user
func (r *NoteRepository) DeleteByUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, n := range r.notes {
		if n.UserID == userID {
			delete(r.notes, id)
		}
	}
	return nil
}

func matches(n *note.Note, f note.Filter) bool {
	if f.NoteType != "" && n.NoteType != f.NoteType {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(n.Tags, f.Tags) {
		return false
	}
	if f.Query != "" && !fieldsContain(n, f.Query) {
		return false
	}
	return true
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func fieldsContain(n *note.Note, query string) bool {
	q := strings.ToLower(query)
	for _, field := range n.Fields {
		if strings.Contains(strings.ToLower(string(field)), q) {
			return true
		}
	}
	return false
}
