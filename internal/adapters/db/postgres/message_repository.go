package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notehive/internal/domain/message"
)

// MessageRepository is a Postgres implementation of message.Repository
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository constructs a MessageRepository
func NewMessageRepository(db *sql.DB) *MessageRepository { return &MessageRepository{db: db} }

const messageColumns = `id,workspace_id,author_id,content,created_at`

// scanMessage scans a message row into a message.Message
func scanMessage(row scanner) (*message.Message, error) {
	var m message.Message
	if err := row.Scan(&m.ID, &m.WorkspaceID, &m.AuthorID, &m.Content, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepository) GetMessage(id string) (*message.Message, error) {
	row := r.db.QueryRow(`SELECT `+messageColumns+` FROM messages WHERE id=$1`, id)
	m, err := scanMessage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, message.ErrMessageNotFound
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return m, nil
}

func (r *MessageRepository) CreateMessage(m *message.Message) error {
	_, err := r.db.Exec(`INSERT INTO messages (`+messageColumns+`) VALUES ($1,$2,$3,$4,$5)`,
		m.ID, m.WorkspaceID, m.AuthorID, m.Content, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *MessageRepository) DeleteMessage(id string) error {
	res, err := r.db.Exec(`DELETE FROM messages WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return message.ErrMessageNotFound
	}
	return nil
}

// ListByWorkspace retrieves up to limit of the workspace's messages created
// before the cursor, newest first. A zero cursor means no lower bound.
func (r *MessageRepository) ListByWorkspace(workspaceID string, limit int, before time.Time) ([]*message.Message, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if before.IsZero() {
		rows, err = r.db.Query(`SELECT `+messageColumns+` FROM messages WHERE workspace_id=$1 ORDER BY created_at DESC LIMIT $2`,
			workspaceID, limit)
	} else {
		rows, err = r.db.Query(`SELECT `+messageColumns+` FROM messages WHERE workspace_id=$1 AND created_at < $2 ORDER BY created_at DESC LIMIT $3`,
			workspaceID, before, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	out := make([]*message.Message, 0, limit)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MessageRepository) DeleteByWorkspace(workspaceID string) error {
	if _, err := r.db.Exec(`DELETE FROM messages WHERE workspace_id=$1`, workspaceID); err != nil {
		return fmt.Errorf("delete workspace messages: %w", err)
	}
	return nil
}
