package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notehive/internal/domain/workspace"

	"github.com/lib/pq"
)

// WorkspaceRepository is a Postgres implementation of workspace.Repository
type WorkspaceRepository struct {
	db *sql.DB
}

// NewWorkspaceRepository constructs a WorkspaceRepository
func NewWorkspaceRepository(db *sql.DB) *WorkspaceRepository { return &WorkspaceRepository{db: db} }

const workspaceColumns = `id,name,profile_name,description,image_path,owner_id,members,banned_members,latest_message_at,created_at,updated_at`

// scanWorkspace scans a workspace row into a workspace.Workspace
func scanWorkspace(row scanner) (*workspace.Workspace, error) {
	var ws workspace.Workspace
	var members, banned []string
	err := row.Scan(&ws.ID, &ws.Name, &ws.Profile.Name, &ws.Profile.Description, &ws.Profile.ImagePath,
		&ws.OwnerID, pq.Array(&members), pq.Array(&banned), &ws.LatestMessageAt, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		return nil, err
	}
	ws.Members = members
	ws.BannedMembers = banned
	if ws.Members == nil {
		ws.Members = []string{}
	}
	if ws.BannedMembers == nil {
		ws.BannedMembers = []string{}
	}
	return &ws, nil
}

func (r *WorkspaceRepository) GetWorkspace(id string) (*workspace.Workspace, error) {
	row := r.db.QueryRow(`SELECT `+workspaceColumns+` FROM workspaces WHERE id=$1`, id)
	ws, err := scanWorkspace(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, workspace.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return ws, nil
}

func (r *WorkspaceRepository) GetWorkspaceByName(name string) (*workspace.Workspace, error) {
	row := r.db.QueryRow(`SELECT `+workspaceColumns+` FROM workspaces WHERE name=$1`, name)
	ws, err := scanWorkspace(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, workspace.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("get workspace by name: %w", err)
	}
	return ws, nil
}

func (r *WorkspaceRepository) CreateWorkspace(ws *workspace.Workspace) error {
	_, err := r.db.Exec(`INSERT INTO workspaces (`+workspaceColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		ws.ID, ws.Name, ws.Profile.Name, ws.Profile.Description, ws.Profile.ImagePath,
		ws.OwnerID, pq.Array(ws.Members), pq.Array(ws.BannedMembers), ws.LatestMessageAt, ws.CreatedAt, ws.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return workspace.ErrNameTaken
		}
		return fmt.Errorf("create workspace: %w", err)
	}
	return nil
}

func (r *WorkspaceRepository) UpdateWorkspace(ws *workspace.Workspace) error {
	res, err := r.db.Exec(`UPDATE workspaces SET name=$2,profile_name=$3,description=$4,image_path=$5,owner_id=$6,members=$7,banned_members=$8,latest_message_at=$9,updated_at=$10 WHERE id=$1`,
		ws.ID, ws.Name, ws.Profile.Name, ws.Profile.Description, ws.Profile.ImagePath,
		ws.OwnerID, pq.Array(ws.Members), pq.Array(ws.BannedMembers), ws.LatestMessageAt, ws.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update workspace: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return workspace.ErrWorkspaceNotFound
	}
	return nil
}

func (r *WorkspaceRepository) DeleteWorkspace(id string) error {
	res, err := r.db.Exec(`DELETE FROM workspaces WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return workspace.ErrWorkspaceNotFound
	}
	return nil
}

func (r *WorkspaceRepository) ListWorkspacesByMember(userID string) ([]*workspace.Workspace, error) {
	rows, err := r.db.Query(`SELECT `+workspaceColumns+` FROM workspaces WHERE $1 = ANY(members) ORDER BY latest_message_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	out := make([]*workspace.Workspace, 0)
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ws)
	}
	return out, rows.Err()
}

func (r *WorkspaceRepository) TouchLatestMessage(id string, at time.Time) error {
	res, err := r.db.Exec(`UPDATE workspaces SET latest_message_at=$2 WHERE id=$1`, id, at)
	if err != nil {
		return fmt.Errorf("touch latest message: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return workspace.ErrWorkspaceNotFound
	}
	return nil
}
