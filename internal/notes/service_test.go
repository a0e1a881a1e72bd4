package notes

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jotter/internal/apperrors"
	"jotter/internal/database/dto"
	"jotter/internal/database/models"
)

// fakeNoteRepo is an in-memory NoteRepository preserving insertion order.
type fakeNoteRepo struct {
	notes map[uuid.UUID]models.Note
	order []uuid.UUID
	now   time.Time
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{
		notes: make(map[uuid.UUID]models.Note),
		now:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// tick advances the fake clock so create/update timestamps are distinct.
func (f *fakeNoteRepo) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakeNoteRepo) Create(_ context.Context, note *models.Note) error {
	note.ID = uuid.New()
	ts := f.tick()
	note.CreatedAt = ts
	note.UpdatedAt = ts
	f.notes[note.ID] = *note
	f.order = append(f.order, note.ID)
	return nil
}

func (f *fakeNoteRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Note, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &note, nil
}

func (f *fakeNoteRepo) GetAllByUser(_ context.Context, userID uuid.UUID) ([]models.Note, error) {
	result := []models.Note{}
	for _, id := range f.order {
		if f.notes[id].UserID == userID {
			result = append(result, f.notes[id])
		}
	}
	return result, nil
}

func (f *fakeNoteRepo) Update(_ context.Context, note *models.Note) error {
	if _, ok := f.notes[note.ID]; !ok {
		return apperrors.ErrNotFound
	}
	note.UpdatedAt = f.tick()
	f.notes[note.ID] = *note
	return nil
}

func (f *fakeNoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.notes[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.notes, id)
	for i, nid := range f.order {
		if nid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeSearchRepo struct {
	repo *fakeNoteRepo
}

func (f *fakeSearchRepo) SearchNotes(ctx context.Context, query string, userID uuid.UUID) ([]models.Note, error) {
	all, _ := f.repo.GetAllByUser(ctx, userID)
	result := []models.Note{}
	for _, note := range all {
		if strings.Contains(note.Content, query) {
			result = append(result, note)
		}
	}
	return result, nil
}

func newTestService() (*Service, *fakeNoteRepo) {
	repo := newFakeNoteRepo()
	return NewService(repo, &fakeSearchRepo{repo: repo}), repo
}

func testUser() *models.User {
	return &models.User{ID: uuid.New(), Username: "alice", Email: "a@x.com"}
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	alice := testUser()

	note, err := svc.Create(context.Background(), alice, dto.NoteInput{Content: "buy milk", Tags: strPtr("errands")})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, note.ID)
	assert.Equal(t, alice.ID, note.UserID)
	assert.Equal(t, "buy milk", note.Content)
	assert.False(t, note.IsCompleted)
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), testUser(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGet_Forbidden(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	alice, bob := testUser(), testUser()

	note, err := svc.Create(context.Background(), alice, dto.NoteInput{Content: "secret"})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), bob, note.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestGet_MissingIDIsNotFoundForEveryone(t *testing.T) {
	t.Parallel()

	// existence is checked before ownership, so a missing id never reads
	// as forbidden
	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), testUser(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrForbidden)
}

func TestGet_Idempotent(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	alice := testUser()

	created, err := svc.Create(context.Background(), alice, dto.NoteInput{Content: "buy milk"})
	require.NoError(t, err)

	first, err := svc.Get(context.Background(), alice, created.ID)
	require.NoError(t, err)
	second, err := svc.Get(context.Background(), alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestList_OwnershipIsolation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	alice, bob := testUser(), testUser()

	ctx := context.Background()
	a1, err := svc.Create(ctx, alice, dto.NoteInput{Content: "alice one"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, dto.NoteInput{Content: "bob one"})
	require.NoError(t, err)
	a2, err := svc.Create(ctx, alice, dto.NoteInput{Content: "alice two"})
	require.NoError(t, err)

	listed, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, a1.ID, listed[0].ID)
	assert.Equal(t, a2.ID, listed[1].ID)
	for _, note := range listed {
		assert.Equal(t, alice.ID, note.UserID)
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	alice := testUser()
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, dto.NoteInput{Content: "buy milk"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice, created.ID, dto.NoteInput{
		Content:     "buy oat milk",
		IsCompleted: true,
		Tags:        strPtr("groceries"),
	})
	require.NoError(t, err)

	assert.Equal(t, "buy oat milk", updated.Content)
	assert.True(t, updated.IsCompleted)
	require.NotNil(t, updated.Tags)
	assert.Equal(t, "groceries", *updated.Tags)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updated_at must be refreshed on mutation")
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdate_Forbidden(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService()
	alice, bob := testUser(), testUser()
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, dto.NoteInput{Content: "buy milk"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob, created.ID, dto.NoteInput{Content: "hijacked"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// the note is untouched
	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", stored.Content)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	alice := testUser()
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, dto.NoteInput{Content: "buy milk"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, alice, created.ID))

	_, err = svc.Get(ctx, alice, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// deleting again is not found, delete is terminal
	err = svc.Delete(ctx, alice, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDelete_Forbidden(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService()
	alice, bob := testUser(), testUser()
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, dto.NoteInput{Content: "keep me"})
	require.NoError(t, err)

	err = svc.Delete(ctx, bob, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = repo.GetByID(ctx, created.ID)
	assert.NoError(t, err)
}

func TestSearch_ScopedToOwner(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	alice, bob := testUser(), testUser()
	ctx := context.Background()

	_, err := svc.Create(ctx, alice, dto.NoteInput{Content: "grocery list"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, dto.NoteInput{Content: "grocery budget"})
	require.NoError(t, err)

	found, err := svc.Search(ctx, alice, "grocery")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, alice.ID, found[0].UserID)
}
