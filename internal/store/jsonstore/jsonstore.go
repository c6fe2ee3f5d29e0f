package jsonstore

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/tasklist/internal/model"
)

// JSON-backed storage. Single file, human-readable, rewritten whole on every save.
// No locking; one process owns the file.

// DefaultFileName is used when no path is configured. Relative to the working directory.
const DefaultFileName = "tasks.json"

const corruptSuffixLayout = "20060102T150405"

//go:embed tasks.schema.json
var schemaText string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func fileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("tasks.schema.json", schemaText)
	})
	return schema, schemaErr
}

// Store loads and saves the task sequence.
type Store struct {
	path        string
	keepCorrupt bool
	logger      *log.Logger
	now         func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithKeepCorrupt controls whether an unparseable file is renamed aside on load.
func WithKeepCorrupt(keep bool) Option {
	return func(s *Store) { s.keepCorrupt = keep }
}

// New returns a store for path. An empty path means DefaultFileName.
func New(path string, opts ...Option) *Store {
	if path == "" {
		path = DefaultFileName
	}
	s := &Store{
		path:        path,
		keepCorrupt: true,
		logger:      log.New(io.Discard),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the task file. A missing, unreadable or corrupt file yields an
// empty sequence; failures are logged, never returned.
func (s *Store) Load() []model.Task {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("cannot read task file, starting empty", "path", s.path, "err", err)
		}
		return []model.Task{}
	}

	tasks, err := decode(b)
	if err != nil {
		s.logger.Warn("task file is corrupt, starting empty", "path", s.path, "err", err)
		if s.keepCorrupt && len(bytes.TrimSpace(b)) > 0 {
			s.setAside()
		}
		return []model.Task{}
	}

	tasks = s.dedupe(tasks)
	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks
}

// Save overwrites the task file with the full sequence.
func (s *Store) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

func decode(b []byte) ([]model.Task, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	sch, err := fileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return tasks, nil
}

// dedupe keeps the first task for each id.
func (s *Store) dedupe(tasks []model.Task) []model.Task {
	seen := make(map[string]struct{}, len(tasks))
	out := tasks[:0]
	for _, t := range tasks {
		if _, dup := seen[t.ID]; dup {
			s.logger.Warn("dropping task with duplicate id", "path", s.path, "id", t.ID, "title", t.Title)
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

func (s *Store) setAside() {
	dst := fmt.Sprintf("%s.corrupt-%s", s.path, s.now().Format(corruptSuffixLayout))
	if err := os.Rename(s.path, dst); err != nil {
		s.logger.Error("cannot set corrupt task file aside", "path", s.path, "err", err)
		return
	}
	s.logger.Warn("corrupt task file kept", "backup", dst)
}
