// Package spelling manages the word lists behind TypeMaster's custom lessons.
// Lists live in a single JSON document on disk.
package spelling

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gosimple/slug"
)

var (
	ErrListNotFound = errors.New("spelling list not found")
	ErrEmptyName    = errors.New("list name cannot be empty")
	ErrNoWords      = errors.New("at least one word required")
)

type List struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Words []string `json:"words"`
}

// LessonID is the TypeMaster lesson id that practises this list.
func (l List) LessonID() string {
	return "custom-" + l.ID
}

type document struct {
	Lists []List `json:"lists"`
}

// Store reads and writes the lists file. Writes replace the file atomically.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// ListID derives a list id from its display name.
func ListID(name string) string {
	return slug.Make(strings.TrimSpace(name))
}

// ParseWords splits on commas when the text has any, otherwise on whitespace.
// Blank entries are dropped.
func ParseWords(content string) []string {
	content = strings.TrimSpace(content)
	var parts []string
	if strings.Contains(content, ",") {
		parts = strings.Split(content, ",")
	} else {
		parts = strings.Fields(content)
	}

	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if w := strings.TrimSpace(p); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// Load returns every list. A missing file is an empty set.
func (s *Store) Load() ([]List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Lists, nil
}

func (s *Store) Get(id string) (*List, error) {
	lists, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range lists {
		if lists[i].ID == id {
			return &lists[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrListNotFound, id)
}

// Add creates a list, or replaces the name and words of the list with the
// same id. replaced reports which happened.
func (s *Store) Add(name string, words []string) (list List, replaced bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return List{}, false, ErrEmptyName
	}
	id := ListID(name)
	if id == "" {
		return List{}, false, fmt.Errorf("list name %q has no usable characters", name)
	}
	if len(words) == 0 {
		return List{}, false, ErrNoWords
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return List{}, false, err
	}

	list = List{ID: id, Name: name, Words: words}
	for i := range doc.Lists {
		if doc.Lists[i].ID == id {
			doc.Lists[i] = list
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Lists = append(doc.Lists, list)
	}

	if err := s.write(doc); err != nil {
		return List{}, false, err
	}
	return list, replaced, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	for i := range doc.Lists {
		if doc.Lists[i].ID == id {
			doc.Lists = append(doc.Lists[:i], doc.Lists[i+1:]...)
			return s.write(doc)
		}
	}
	return fmt.Errorf("%w: %s", ErrListNotFound, id)
}

func (s *Store) read() (document, error) {
	doc := document{Lists: []List{}}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("failed to read spelling lists: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to parse spelling lists %s: %w", s.path, err)
	}
	if doc.Lists == nil {
		doc.Lists = []List{}
	}
	return doc, nil
}

func (s *Store) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode spelling lists: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".spelling-lists-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write spelling lists: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write spelling lists: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace spelling lists: %w", err)
	}
	return nil
}
