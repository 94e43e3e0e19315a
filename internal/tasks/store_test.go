package tasks

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", DBFileName))
	require.NoError(t, err, "Open should succeed")
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func texts(tasks []Task) []string {
	result := make([]string, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, task.Text)
	}
	return result
}

func TestOpen_CreatesDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DBFileName)
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	info, err := os.Stat(path)
	require.NoError(t, err, "database file should exist")
	require.False(t, info.IsDir())
}

func TestAdd_TrimsAndRejectsEmpty(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Add("   ")
	require.ErrorIs(t, err, ErrEmptyText)

	task, err := store.Add("  write report  ")
	require.NoError(t, err)
	require.Equal(t, "write report", task.Text)
	require.False(t, task.Done)
	require.Zero(t, task.Pomos)
	_, err = uuid.Parse(task.ID)
	require.NoError(t, err, "task ID should be a uuid")
}

func TestAdd_FirstTaskBecomesActive(t *testing.T) {
	store := openTestStore(t)

	first, err := store.Add("first")
	require.NoError(t, err)
	require.True(t, first.Active)

	second, err := store.Add("second")
	require.NoError(t, err)
	require.False(t, second.Active)

	active, ok, err := store.Active()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, first.ID, active.ID)
}

func TestList_InsertionOrder(t *testing.T) {
	store := openTestStore(t)
	for _, text := range []string{"a", "b", "c"} {
		_, err := store.Add(text)
		require.NoError(t, err)
	}

	list, err := store.List()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, texts(list))
}

func TestAdd_PreservesCreatedAt(t *testing.T) {
	store := openTestStore(t)
	created := time.Date(2026, 3, 14, 9, 30, 15, 123_000_000, time.UTC)
	store.now = func() time.Time { return created }

	task, err := store.Add("timestamped")
	require.NoError(t, err)

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, created.Equal(list[0].CreatedAt))
	require.Equal(t, task, list[0])
}

func TestDelete_ActiveFallsBackToFirstRemaining(t *testing.T) {
	store := openTestStore(t)
	a, _ := store.Add("a")
	b, _ := store.Add("b")
	c, _ := store.Add("c")

	require.NoError(t, store.SetActive(b.ID))
	require.NoError(t, store.Delete(b.ID))

	active, ok, err := store.Active()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, a.ID, active.ID)

	require.NoError(t, store.Delete(c.ID))
	active, _, err = store.Active()
	require.NoError(t, err)
	require.Equal(t, a.ID, active.ID, "deleting an inactive task keeps the selection")

	require.NoError(t, store.Delete(a.ID))
	_, ok, err = store.Active()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDelete_Unknown(t *testing.T) {
	store := openTestStore(t)
	require.ErrorIs(t, store.Delete("missing"), ErrTaskNotFound)
}

func TestToggleDone(t *testing.T) {
	store := openTestStore(t)
	task, _ := store.Add("toggle me")

	toggled, err := store.ToggleDone(task.ID)
	require.NoError(t, err)
	require.True(t, toggled.Done)

	toggled, err = store.ToggleDone(task.ID)
	require.NoError(t, err)
	require.False(t, toggled.Done)

	_, err = store.ToggleDone("missing")
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestSetActive_KeepsSingleActive(t *testing.T) {
	store := openTestStore(t)
	_, _ = store.Add("a")
	b, _ := store.Add("b")

	require.NoError(t, store.SetActive(b.ID))
	list, err := store.List()
	require.NoError(t, err)

	activeCount := 0
	for _, task := range list {
		if task.Active {
			activeCount++
			require.Equal(t, b.ID, task.ID)
		}
	}
	require.Equal(t, 1, activeCount)

	require.ErrorIs(t, store.SetActive("missing"), ErrTaskNotFound)
}

func TestRecordPomodoro(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.RecordPomodoro()
	require.NoError(t, err)
	require.False(t, ok, "no active task")

	a, _ := store.Add("a")
	b, _ := store.Add("b")

	task, ok, err := store.RecordPomodoro()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, a.ID, task.ID)
	require.Equal(t, 1, task.Pomos)

	require.NoError(t, store.SetActive(b.ID))
	_, _, err = store.RecordPomodoro()
	require.NoError(t, err)
	_, _, err = store.RecordPomodoro()
	require.NoError(t, err)

	list, err := store.List()
	require.NoError(t, err)
	require.Equal(t, 1, list[0].Pomos)
	require.Equal(t, 2, list[1].Pomos)
}

type stubResult struct {
	affected int64
	err      error
}

func (result stubResult) LastInsertId() (int64, error) { return 0, nil }
func (result stubResult) RowsAffected() (int64, error) { return result.affected, result.err }

func TestCreditedRow(t *testing.T) {
	credited, err := creditedRow(stubResult{affected: 1})
	require.NoError(t, err)
	require.True(t, credited)

	credited, err = creditedRow(stubResult{affected: 0})
	require.NoError(t, err, "no active task is not an error")
	require.False(t, credited)

	driverErr := errors.New("rows affected unsupported")
	credited, err = creditedRow(stubResult{err: driverErr})
	require.ErrorIs(t, err, driverErr)
	require.NotErrorIs(t, err, ErrTaskNotFound)
	require.False(t, credited)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFileName)
	store, err := Open(path)
	require.NoError(t, err)
	task, err := store.Add("survive restart")
	require.NoError(t, err)
	_, _, err = store.RecordPomodoro()
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	active, ok, err := reopened.Active()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, task.ID, active.ID)
	require.Equal(t, 1, active.Pomos)
}
