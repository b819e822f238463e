package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"notehive/internal/domain/note"

	"github.com/lib/pq"
)

// NoteRepository is a Postgres implementation of note.Repository.
// Note fields are client-defined JSON and live in a jsonb column.
type NoteRepository struct {
	db *sql.DB
}

// NewNoteRepository constructs a NoteRepository
func NewNoteRepository(db *sql.DB) *NoteRepository { return &NoteRepository{db: db} }

const noteColumns = `id,user_id,workspace_id,fields,note_type,tags,vector_data,created_at,updated_at`

// scanNote scans a note row into a note.Note
func scanNote(row scanner) (*note.Note, error) {
	var n note.Note
	var fields []byte
	var vector []float64
	err := row.Scan(&n.ID, &n.UserID, &n.WorkspaceID, &fields, &n.NoteType,
		pq.Array(&n.Tags), pq.Array(&vector), &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &n.Fields); err != nil {
			return nil, fmt.Errorf("decode note fields: %w", err)
		}
	}
	n.VectorData = vector
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return &n, nil
}

func encodeFields(fields []json.RawMessage) ([]byte, error) {
	if fields == nil {
		fields = []json.RawMessage{}
	}
	return json.Marshal(fields)
}

func (r *NoteRepository) GetNote(id string) (*note.Note, error) {
	row := r.db.QueryRow(`SELECT `+noteColumns+` FROM notes WHERE id=$1`, id)
	n, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, note.ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (r *NoteRepository) CreateNote(n *note.Note) error {
	fields, err := encodeFields(n.Fields)
	if err != nil {
		return fmt.Errorf("encode note fields: %w", err)
	}
	_, err = r.db.Exec(`INSERT INTO notes (`+noteColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		n.ID, n.UserID, n.WorkspaceID, fields, n.NoteType, pq.Array(n.Tags), pq.Array(n.VectorData), n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *NoteRepository) UpdateNote(n *note.Note) error {
	fields, err := encodeFields(n.Fields)
	if err != nil {
		return fmt.Errorf("encode note fields: %w", err)
	}
	res, err := r.db.Exec(`UPDATE notes SET workspace_id=$2,fields=$3,note_type=$4,tags=$5,vector_data=$6,updated_at=$7 WHERE id=$1`,
		n.ID, n.WorkspaceID, fields, n.NoteType, pq.Array(n.Tags), pq.Array(n.VectorData), n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return note.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) DeleteNote(id string) error {
	res, err := r.db.Exec(`DELETE FROM notes WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return note.ErrNoteNotFound
	}
	return nil
}

// FindByWorkspace retrieves the workspace's notes matching the filter,
// newest first
func (r *NoteRepository) FindByWorkspace(workspaceID string, f note.Filter) ([]*note.Note, error) {
	var (
		conds = []string{"workspace_id=$1"}
		args  = []interface{}{workspaceID}
	)
	if f.NoteType != "" {
		args = append(args, f.NoteType)
		conds = append(conds, "note_type=$"+strconv.Itoa(len(args)))
	}
	if len(f.Tags) > 0 {
		args = append(args, pq.Array(f.Tags))
		conds = append(conds, "tags && $"+strconv.Itoa(len(args)))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		conds = append(conds, "fields::text ILIKE $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + noteColumns + ` FROM notes WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY created_at DESC`
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}
	defer rows.Close()

	out := make([]*note.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// DistinctTags retrieves the distinct tags used by the workspace's notes
func (r *NoteRepository) DistinctTags(workspaceID string) ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT unnest(tags) FROM notes WHERE workspace_id=$1 ORDER BY 1`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("distinct tags: %w", err)
	}
	defer rows.Close()

	tags := make([]string, 0)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *NoteRepository) DeleteByWorkspace(workspaceID string) error {
	if _, err := r.db.Exec(`DELETE FROM notes WHERE workspace_id=$1`, workspaceID); err != nil {
		return fmt.Errorf("delete workspace notes: %w", err)
	}
	return nil
}

func (r *NoteRepository) DeleteByUser(userID string) error {
	if _, err := r.db.Exec(`DELETE FROM notes WHERE user_id=$1`, userID); err != nil {
		return fmt.Errorf("delete user notes: %w", err)
	}
	return nil
}
