package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
)

// fileNames maps collection names to file names where they differ. The
// feedback collection predates the others and kept its singular file name.
var fileNames = map[string]string{
	Feedbacks: "feedback.json",
}

// FileStore keeps each collection as one JSON document on disk:
// {"<collection>": [record, ...]}. Reads parse the whole document, writes
// rewrite it atomically via a temp file and rename. A per-collection mutex
// serializes access so concurrent requests cannot interleave a
// read-modify-write cycle against the same file.
type FileStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *FileStore) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

func (s *FileStore) path(collection string) string {
	name, ok := fileNames[collection]
	if !ok {
		name = collection + ".json"
	}
	return filepath.Join(s.dir, name)
}

// Ensure creates the data dir and an empty collection file if absent.
func (s *FileStore) Ensure(ctx context.Context, collection string) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	return s.ensureLocked(collection)
}

func (s *FileStore) ensureLocked(collection string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	path := s.path(collection)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s store: %w", collection, err)
	}
	empty := []byte(fmt.Sprintf("{\n  %q: []\n}", collection))
	if err := os.WriteFile(path, empty, 0o644); err != nil {
		return fmt.Errorf("init %s store: %w", collection, err)
	}
	return nil
}

// Read loads the collection into out (a pointer to a slice of the record
// type). A missing or non-array stored value yields an empty sequence rather
// than an error; a document that fails to parse at all is an error.
func (s *FileStore) Read(ctx context.Context, collection string, out any) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	if err := s.ensureLocked(collection); err != nil {
		return err
	}
	raw, err := os.ReadFile(s.path(collection))
	if err != nil {
		return fmt.Errorf("read %s store: %w", collection, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return json.Unmarshal([]byte("[]"), out)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse %s store: %w", collection, err)
	}
	seq, ok := doc[collection]
	if !ok || !isJSONArray(seq) {
		return json.Unmarshal([]byte("[]"), out)
	}
	if err := json.Unmarshal(seq, out); err != nil {
		return fmt.Errorf("parse %s records: %w", collection, err)
	}
	return nil
}

// Write replaces the collection with records. The document hits a temp file
// first and is renamed into place, so a reader never sees a partial write.
func (s *FileStore) Write(ctx context.Context, collection string, records any) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if v := reflect.ValueOf(records); v.Kind() == reflect.Slice && v.IsNil() {
		records = []any{}
	}
	doc, err := json.MarshalIndent(map[string]any{collection: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s store: %w", collection, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+collection+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write %s store: %w", collection, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s store: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s store: %w", collection, err)
	}
	if err := os.Rename(tmp.Name(), s.path(collection)); err != nil {
		return fmt.Errorf("write %s store: %w", collection, err)
	}
	return nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
