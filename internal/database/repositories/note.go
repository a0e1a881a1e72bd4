package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"jotter/internal/apperrors"
	"jotter/internal/database/models"
)

// NoteRepository fetches notes by id regardless of owner; ownership is
// checked above this layer so a foreign note reads as forbidden, not
// missing.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error)
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type noteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (content, is_completed, tags, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, note.Content, note.IsCompleted, note.Tags, note.UserID).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating note: %w", err)
	}
	return nil
}

func (r *noteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	note := models.Note{}
	query := `SELECT id, content, is_completed, tags, user_id, created_at, updated_at FROM notes WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&note.ID, &note.Content, &note.IsCompleted, &note.Tags, &note.UserID, &note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting note: %w", err)
	}
	return &note, nil
}

func (r *noteRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]models.Note, error) {
	query := `SELECT id, content, is_completed, tags, user_id, created_at, updated_at FROM notes WHERE user_id = $1 ORDER BY created_at, id`
	result, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying notes: %w", err)
	}
	defer result.Close()
	notes := []models.Note{}
	for result.Next() {
		var note models.Note
		err := result.Scan(
			&note.ID,
			&note.Content,
			&note.IsCompleted,
			&note.Tags,
			&note.UserID,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, note)
	}
	if err = result.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}

// Update overwrites content, completion and tags and refreshes updated_at
// explicitly; the column default only fires at insert time.
func (r *noteRepository) Update(ctx context.Context, note *models.Note) error {
	query := `
			UPDATE notes
			SET content = $1, is_completed = $2, tags = $3, updated_at = CURRENT_TIMESTAMP
			WHERE id = $4
			RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, note.Content, note.IsCompleted, note.Tags, note.ID).Scan(&note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error updating note: %w", err)
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
