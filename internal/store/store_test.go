package store

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-tracker/internal/domain"
	"todo-tracker/internal/errors"
	"todo-tracker/internal/validation"
)

// fakeRepository keeps records in memory and can be told to fail saves.
type fakeRepository struct {
	records []domain.Record
	saves   int
	saveErr error
	loadErr error
}

func (f *fakeRepository) Save(ctx context.Context, records []domain.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records = append([]domain.Record(nil), records...)
	f.saves++
	return nil
}

func (f *fakeRepository) Load(ctx context.Context) ([]domain.Record, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.records, nil
}

func (f *fakeRepository) Close() error { return nil }

// fakeNotifier records every alert it is asked to send.
type fakeNotifier struct {
	titles   []string
	messages []string
	err      error
}

func (f *fakeNotifier) SendAlert(title, message string) error {
	if f.err != nil {
		return f.err
	}
	f.titles = append(f.titles, title)
	f.messages = append(f.messages, message)
	return nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestStore(t *testing.T) (*Store, *fakeRepository, *fakeNotifier) {
	t.Helper()
	repo := &fakeRepository{}
	notifier := &fakeNotifier{}
	s, err := New(context.Background(), repo, notifier, quietLogger())
	require.NoError(t, err)
	return s, repo, notifier
}

func TestStore_CreateAndGet(t *testing.T) {
	s, repo, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.NewDraft("Pay rent", "september"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
	assert.False(t, created.Completed)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	assert.Equal(t, 1, repo.saves)
	require.Len(t, repo.records, 1)
	assert.Equal(t, "Pay rent", repo.records[0].Title)
}

func TestStore_CreateAssignsIncreasingIDs(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, domain.NewDraft("one", ""))
	require.NoError(t, err)
	second, err := s.Create(ctx, domain.NewDraft("two", ""))
	require.NoError(t, err)

	assert.Equal(t, first.ID+1, second.ID)
}

func TestStore_CreateInvalidDraftLeavesStateUnchanged(t *testing.T) {
	s, repo, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, domain.NewDraft("", ""))
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))

	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0, repo.saves)

	// the next successful create still gets id 1
	created, err := s.Create(ctx, domain.NewDraft("ok", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestStore_CreateNormalizesDueDate(t *testing.T) {
	s, _, _ := newTestStore(t)

	draft := domain.NewDraft("Pay rent", "")
	draft.DueDate = "09/01/2030"

	created, err := s.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "2030-09-01", created.DueDate)
}

func TestStore_GetNotFound(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.Get(42)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestStore_ListOrderedByID(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := s.Create(ctx, domain.NewDraft(title, ""))
		require.NoError(t, err)
	}

	tasks := s.List()
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"one", "two", "three"},
		[]string{tasks[0].Title, tasks[1].Title, tasks[2].Title})
}

func TestStore_Update(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.NewDraft("Pay rent", "september"))
	require.NoError(t, err)

	title := "Pay rent (October)"
	priority := domain.PriorityHigh
	updated, err := s.Update(ctx, created.ID, domain.TaskPatch{
		Title:    &title,
		Priority: &priority,
	})
	require.NoError(t, err)

	assert.Equal(t, "Pay rent (October)", updated.Title)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
	assert.Equal(t, "september", updated.Description)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestStore_UpdateInvalidPatchLeavesTaskUnchanged(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.NewDraft("Pay rent", ""))
	require.NoError(t, err)

	badTitle := ""
	_, err = s.Update(ctx, created.ID, domain.TaskPatch{Title: &badTitle})
	require.Error(t, err)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pay rent", got.Title)
}

func TestStore_UpdateNotFound(t *testing.T) {
	s, _, _ := newTestStore(t)

	title := "anything"
	_, err := s.Update(context.Background(), 42, domain.TaskPatch{Title: &title})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestStore_Delete(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.NewDraft("Pay rent", ""))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))
	assert.Equal(t, 0, s.Count())

	_, err = s.Get(created.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestStore_DeleteNotFoundLeavesStateUnchanged(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, domain.NewDraft("Pay rent", ""))
	require.NoError(t, err)

	err = s.Delete(ctx, 42)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	assert.Equal(t, 1, s.Count())
}

func TestStore_DeletedIDIsNeverReused(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.NewDraft("one", ""))
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, created.ID))

	next, err := s.Create(ctx, domain.NewDraft("two", ""))
	require.NoError(t, err)
	assert.Greater(t, next.ID, created.ID)
}

func TestStore_ToggleNonRecurring(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.NewDraft("Pay rent", ""))
	require.NoError(t, err)

	successor, err := s.ToggleCompletion(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, successor)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	// toggling twice restores the original state
	_, err = s.ToggleCompletion(ctx, created.ID)
	require.NoError(t, err)
	got, err = s.Get(created.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
}

func TestStore_ToggleRecurringSpawnsSuccessor(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	draft := domain.NewDraft("Water plants", "")
	draft.IsRecurring = true
	draft.Frequency = domain.FrequencyWeekly
	draft.DueDate = "2030-01-15"
	draft.Tags = []string{"home"}

	created, err := s.Create(ctx, draft)
	require.NoError(t, err)

	successor, err := s.ToggleCompletion(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, successor)

	assert.Equal(t, created.ID+1, successor.ID)
	assert.Equal(t, "2030-01-22", successor.DueDate)
	assert.Equal(t, created.Title, successor.Title)
	assert.Equal(t, created.Tags, successor.Tags)
	assert.True(t, successor.IsRecurring)
	assert.False(t, successor.Completed)

	completed, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)
	assert.Equal(t, 2, s.Count())
}

func TestStore_ToggleRecurringWithoutDueDateUsesCreationDate(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	originalNow := timeNow
	timeNow = func() time.Time { return time.Date(2030, 1, 15, 10, 0, 0, 0, time.Local) }
	t.Cleanup(func() { timeNow = originalNow })

	draft := domain.NewDraft("Water plants", "")
	draft.IsRecurring = true
	draft.Frequency = domain.FrequencyDaily

	created, err := s.Create(ctx, draft)
	require.NoError(t, err)

	successor, err := s.ToggleCompletion(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, successor)
	assert.Equal(t, "2030-01-16", successor.DueDate)
}

func TestStore_ToggleCompletedRecurringIsTerminal(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	draft := domain.NewDraft("Water plants", "")
	draft.IsRecurring = true
	draft.Frequency = domain.FrequencyWeekly
	draft.DueDate = "2030-01-15"

	created, err := s.Create(ctx, draft)
	require.NoError(t, err)
	_, err = s.ToggleCompletion(ctx, created.ID)
	require.NoError(t, err)

	_, err = s.ToggleCompletion(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	assert.Equal(t, 2, s.Count())
}

func TestStore_ToggleNotFound(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.ToggleCompletion(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestStore_PersistFailureKeepsInMemoryEffect(t *testing.T) {
	s, repo, _ := newTestStore(t)
	ctx := context.Background()

	repo.saveErr = errors.NewStorageError("disk full", nil)

	created, err := s.Create(ctx, domain.NewDraft("Pay rent", ""))
	require.NoError(t, err)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pay rent", got.Title)
}

func TestStore_LoadsExistingTasks(t *testing.T) {
	repo := &fakeRepository{
		records: []domain.Record{
			{ID: 3, Title: "existing", CreatedAt: "2024-06-10T09:30:00Z", Priority: "medium", Tags: []string{}},
		},
	}

	s, err := New(context.Background(), repo, &fakeNotifier{}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count())

	// next id continues past the highest persisted id
	created, err := s.Create(context.Background(), domain.NewDraft("new", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)
}

func TestStore_CorruptDataFailsConstruction(t *testing.T) {
	repo := &fakeRepository{
		records: []domain.Record{
			{ID: 1, Title: "bad", CreatedAt: "not-a-time"},
		},
	}

	_, err := New(context.Background(), repo, &fakeNotifier{}, quietLogger())
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))
}

func TestStore_NotifiesWhenDueDateInsideWindow(t *testing.T) {
	s, _, notifier := newTestStore(t)
	ctx := context.Background()

	draft := domain.NewDraft("Pay rent", "")
	draft.DueDate = time.Now().Format("2006-01-02")

	_, err := s.Create(ctx, draft)
	require.NoError(t, err)

	// a task due today may or may not be inside the window depending on
	// the time of day; a far-future one must never alert
	future := domain.NewDraft("Far future", "")
	future.DueDate = "2099-01-01"
	_, err = s.Create(ctx, future)
	require.NoError(t, err)

	for _, msg := range notifier.messages {
		assert.NotContains(t, msg, "Far future")
	}
	for _, title := range notifier.titles {
		assert.Equal(t, "Upcoming Task Reminder", title)
	}
}
