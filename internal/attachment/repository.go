package attachment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when an attachment does not exist.
var ErrNotFound = errors.New("attachment not found")

// Repository defines operations for managing attachment records.
type Repository interface {
	FindByRiver(ctx context.Context, riverID int64) ([]Attachment, error)
	FindByID(ctx context.Context, id int64) (*Attachment, error)
	Create(ctx context.Context, a *Attachment) error
	Delete(ctx context.Context, id int64) error
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db sqlx.ExtContext
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db sqlx.ExtContext) *DBRepository {
	return &DBRepository{db: db}
}

// FindByRiver returns the attachments of one river, newest first.
func (repo *DBRepository) FindByRiver(ctx context.Context, riverID int64) ([]Attachment, error) {
	var attachments []Attachment
	err := sqlx.SelectContext(ctx, repo.db, &attachments,
		"SELECT * FROM attachments WHERE river_id = ? ORDER BY upload_date DESC, id DESC", riverID)
	if err != nil {
		return nil, fmt.Errorf("sqlx.SelectContext(attachments) > %w", err)
	}
	return attachments, nil
}

// FindByID returns the attachment with the given id, or ErrNotFound.
func (repo *DBRepository) FindByID(ctx context.Context, id int64) (*Attachment, error) {
	var a Attachment
	err := sqlx.GetContext(ctx, repo.db, &a, "SELECT * FROM attachments WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlx.GetContext(attachment) > %w", err)
	}
	return &a, nil
}

// Create inserts a new attachment record and fills in its id.
func (repo *DBRepository) Create(ctx context.Context, a *Attachment) error {
	result, err := repo.db.ExecContext(ctx,
		`INSERT INTO attachments (river_id, file_name, file_path, file_type, file_size, description)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.RiverID, a.FileName, a.FilePath, a.FileType, a.FileSize, a.Description)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert attachment) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	a.ID = id
	return nil
}

// Delete removes an attachment record.
func (repo *DBRepository) Delete(ctx context.Context, id int64) error {
	result, err := repo.db.ExecContext(ctx, "DELETE FROM attachments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete attachment) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
