// Package tasks persists the task list and per-task pomodoro counts.
package tasks

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DBFileName is the task database inside the data directory.
const DBFileName = "tasks.db"

var (
	// ErrTaskNotFound is returned for an unknown task ID.
	ErrTaskNotFound = errors.New("task not found")
	// ErrEmptyText is returned when a task's text is blank.
	ErrEmptyText = errors.New("task text is empty")
)

// Task is one entry of the task list.
type Task struct {
	ID        string
	Text      string
	Done      bool
	Pomos     int
	Active    bool
	CreatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	text TEXT NOT NULL,
	done INTEGER NOT NULL DEFAULT 0,
	pomos INTEGER NOT NULL DEFAULT 0,
	active INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
`

const taskColumns = `id, text, done, pomos, active, created_at`

// Store is a SQLite-backed task list. At most one task is active.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the task database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open task database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA journal_mode = WAL", schema} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("initialize task database: %w", err)
		}
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (store *Store) Close() error {
	return store.db.Close()
}

// Add appends a task. The first task added while none is active becomes
// active.
func (store *Store) Add(text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}

	task := Task{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: store.now().UTC().Truncate(time.Millisecond),
	}

	err := store.inTx(func(tx *sql.Tx) error {
		var activeCount int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM tasks WHERE active = 1`).Scan(&activeCount); err != nil {
			return fmt.Errorf("count active tasks: %w", err)
		}
		task.Active = activeCount == 0

		_, err := tx.Exec(
			`INSERT INTO tasks (id, text, done, pomos, active, created_at) VALUES (?, ?, 0, 0, ?, ?)`,
			task.ID, task.Text, task.Active, task.CreatedAt.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		return nil
	})
	if err != nil {
		return Task{}, err
	}
	return task, nil
}

// Delete removes a task. If it was active, the first remaining task becomes
// active.
func (store *Store) Delete(id string) error {
	return store.inTx(func(tx *sql.Tx) error {
		task, err := getTask(tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		if !task.Active {
			return nil
		}
		_, err = tx.Exec(`UPDATE tasks SET active = 1 WHERE seq = (SELECT MIN(seq) FROM tasks)`)
		if err != nil {
			return fmt.Errorf("select fallback task: %w", err)
		}
		return nil
	})
}

// ToggleDone flips a task's done flag.
func (store *Store) ToggleDone(id string) (Task, error) {
	var task Task
	err := store.inTx(func(tx *sql.Tx) error {
		result, err := tx.Exec(`UPDATE tasks SET done = 1 - done WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("toggle task: %w", err)
		}
		if err := requireRow(result); err != nil {
			return err
		}
		task, err = getTask(tx, id)
		return err
	})
	return task, err
}

// SetActive makes id the active task.
func (store *Store) SetActive(id string) error {
	return store.inTx(func(tx *sql.Tx) error {
		if _, err := getTask(tx, id); err != nil {
			return err
		}
		if _, err := tx.Exec(`UPDATE tasks SET active = (id = ?)`, id); err != nil {
			return fmt.Errorf("set active task: %w", err)
		}
		return nil
	})
}

// Active returns the active task, if any.
func (store *Store) Active() (Task, bool, error) {
	row := store.db.QueryRow(`SELECT ` + taskColumns + ` FROM tasks WHERE active = 1 LIMIT 1`)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, false, nil
	}
	if err != nil {
		return Task{}, false, fmt.Errorf("query active task: %w", err)
	}
	return task, true, nil
}

// List returns every task in insertion order.
func (store *Store) List() ([]Task, error) {
	rows, err := store.db.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var result []Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return result, nil
}

// RecordPomodoro credits one completed work interval to the active task.
// It reports false when no task is active.
func (store *Store) RecordPomodoro() (Task, bool, error) {
	var (
		task  Task
		found bool
	)
	err := store.inTx(func(tx *sql.Tx) error {
		result, err := tx.Exec(`UPDATE tasks SET pomos = pomos + 1 WHERE active = 1`)
		if err != nil {
			return fmt.Errorf("record pomodoro: %w", err)
		}
		credited, err := creditedRow(result)
		if err != nil {
			return fmt.Errorf("record pomodoro: %w", err)
		}
		if !credited {
			return nil
		}
		row := tx.QueryRow(`SELECT ` + taskColumns + ` FROM tasks WHERE active = 1`)
		task, err = scanTask(row)
		if err != nil {
			return fmt.Errorf("query active task: %w", err)
		}
		found = true
		return nil
	})
	return task, found, err
}

func (store *Store) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := store.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func getTask(tx *sql.Tx, id string) (Task, error) {
	task, err := scanTask(tx.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, fmt.Errorf("get task %s: %w", id, ErrTaskNotFound)
	}
	if err != nil {
		return Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// creditedRow reports whether an update touched the active task. A missing
// active task is not an error.
func creditedRow(result sql.Result) (bool, error) {
	err := requireRow(result)
	if errors.Is(err, ErrTaskNotFound) {
		return false, nil
	}
	return err == nil, err
}

func scanTask(scanner interface{ Scan(...any) error }) (Task, error) {
	var (
		task      Task
		createdAt int64
	)
	if err := scanner.Scan(&task.ID, &task.Text, &task.Done, &task.Pomos, &task.Active, &createdAt); err != nil {
		return Task{}, err
	}
	task.CreatedAt = time.UnixMilli(createdAt).UTC()
	return task, nil
}
