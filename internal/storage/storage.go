package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"planner/internal/task"
)

// Store persists the task and category collections in SQLite.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const tasksDDL = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	due_date TEXT DEFAULT NULL,
	priority TEXT NOT NULL DEFAULT 'normal',
	category TEXT NOT NULL DEFAULT '',
	completed INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL DEFAULT 0
);`
	const categoriesDDL = `
CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	icon TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL DEFAULT 0
);`
	for _, ddl := range []string{tasksDDL, categoriesDDL} {
		if _, err := s.db.Exec(ddl); err != nil {
			return err
		}
	}
	return s.ensureTaskColumns()
}

// ensureTaskColumns adds columns introduced after the first schema.
func (s *Store) ensureTaskColumns() error {
	required := map[string]string{
		"description": "ALTER TABLE tasks ADD COLUMN description TEXT NOT NULL DEFAULT '';",
		"due_date":    "ALTER TABLE tasks ADD COLUMN due_date TEXT DEFAULT NULL;",
		"category":    "ALTER TABLE tasks ADD COLUMN category TEXT NOT NULL DEFAULT '';",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.Query(`PRAGMA table_info(tasks);`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			rows.Close()
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := s.db.Exec(alter); err != nil {
			return fmt.Errorf("add column %s: %w", col, err)
		}
	}
	return nil
}

func (s *Store) LoadTasks(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description, created_at, due_date, priority, category, completed FROM tasks ORDER BY position, rowid;`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		var t task.Task
		var completed int
		var priority, createdStr string
		var dueStr sql.NullString

		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &createdStr, &dueStr, &priority, &t.Category, &completed); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Completed = completed == 1
		t.Priority = task.Priority(priority)
		if created, err := time.Parse(time.RFC3339Nano, createdStr); err == nil {
			t.CreatedAt = created.Local()
		}
		if dueStr.Valid {
			if parsed, err := time.Parse(time.RFC3339Nano, dueStr.String); err == nil {
				due := parsed.Local()
				t.DueDate = &due
			}
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SaveTasks replaces the stored collection with tasks in one transaction.
func (s *Store) SaveTasks(ctx context.Context, tasks []task.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks;`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tasks (id, title, description, created_at, due_date, priority, category, completed, position) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range tasks {
		dueStr := sql.NullString{}
		if t.DueDate != nil {
			dueStr = sql.NullString{String: t.DueDate.UTC().Format(time.RFC3339Nano), Valid: true}
		}
		done := 0
		if t.Completed {
			done = 1
		}
		if _, err := stmt.ExecContext(ctx, t.ID, t.Title, t.Description, t.CreatedAt.UTC().Format(time.RFC3339Nano),
			dueStr, string(t.Priority), t.Category, done, i); err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) LoadCategories(ctx context.Context) ([]task.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color, icon FROM categories ORDER BY position, rowid;`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	cats := []task.Category{}
	for rows.Next() {
		var c task.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (s *Store) SaveCategories(ctx context.Context, cats []task.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories;`); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	for i, c := range cats {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (id, name, color, icon, position) VALUES (?, ?, ?, ?, ?);`,
			c.ID, c.Name, c.Color, c.Icon, i); err != nil {
			return fmt.Errorf("insert category %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
