// Package notes owns the lifecycle of a note. Every single-note operation
// goes through the same gate: existence first, then ownership, then the
// mutation. Input is validated at the boundary before it reaches this
// package.
package notes

import (
	"context"

	"github.com/google/uuid"

	"jotter/internal/apperrors"
	"jotter/internal/database/dto"
	"jotter/internal/database/models"
	"jotter/internal/database/repositories"
)

type Service struct {
	notes  repositories.NoteRepository
	search repositories.SearchRepository
}

func NewService(notes repositories.NoteRepository, search repositories.SearchRepository) *Service {
	return &Service{notes: notes, search: search}
}

// authorize is the ownership comparison. It runs only after the note is
// known to exist, so a probe against a missing id reads as not found, never
// forbidden.
func authorize(note *models.Note, requester *models.User) error {
	if note.UserID != requester.ID {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *Service) Create(ctx context.Context, owner *models.User, input dto.NoteInput) (*models.Note, error) {
	note := &models.Note{
		Content:     input.Content,
		IsCompleted: input.IsCompleted,
		Tags:        input.Tags,
		UserID:      owner.ID,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) List(ctx context.Context, owner *models.User) ([]models.Note, error) {
	return s.notes.GetAllByUser(ctx, owner.ID)
}

func (s *Service) Get(ctx context.Context, owner *models.User, id uuid.UUID) (*models.Note, error) {
	return s.getOwned(ctx, owner, id)
}

// Update is a full replace of content, completion and tags.
func (s *Service) Update(ctx context.Context, owner *models.User, id uuid.UUID, input dto.NoteInput) (*models.Note, error) {
	note, err := s.getOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	note.Content = input.Content
	note.IsCompleted = input.IsCompleted
	note.Tags = input.Tags
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) Delete(ctx context.Context, owner *models.User, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, owner, id); err != nil {
		return err
	}
	return s.notes.Delete(ctx, id)
}

func (s *Service) Search(ctx context.Context, owner *models.User, query string) ([]models.Note, error) {
	return s.search.SearchNotes(ctx, query, owner.ID)
}

func (s *Service) getOwned(ctx context.Context, owner *models.User, id uuid.UUID) (*models.Note, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(note, owner); err != nil {
		return nil, err
	}
	return note, nil
}
