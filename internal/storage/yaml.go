package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"planner/internal/task"
)

type document struct {
	Tasks      []task.Task     `yaml:"tasks"`
	Categories []task.Category `yaml:"categories"`
}

// FileStore keeps both collections in a single YAML document. A missing
// file reads as empty collections.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func OpenYAML(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("data file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) LoadTasks(ctx context.Context) ([]task.Task, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

func (s *FileStore) SaveTasks(ctx context.Context, tasks []task.Task) error {
	return s.modify(ctx, func(doc *document) {
		doc.Tasks = tasks
	})
}

func (s *FileStore) LoadCategories(ctx context.Context) ([]task.Category, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

func (s *FileStore) SaveCategories(ctx context.Context, cats []task.Category) error {
	return s.modify(ctx, func(doc *document) {
		doc.Categories = cats
	})
}

func (s *FileStore) read(ctx context.Context) (document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(ctx)
}

func (s *FileStore) readLocked(ctx context.Context) (document, error) {
	doc := document{Tasks: []task.Task{}, Categories: []task.Category{}}
	if err := ctx.Err(); err != nil {
		return doc, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, err
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if doc.Tasks == nil {
		doc.Tasks = []task.Task{}
	}
	if doc.Categories == nil {
		doc.Categories = []task.Category{}
	}
	return doc, nil
}

func (s *FileStore) modify(ctx context.Context, fn func(*document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readLocked(ctx)
	if err != nil {
		return err
	}
	fn(&doc)

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".planner-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
