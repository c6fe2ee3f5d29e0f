// Package todo holds the in-memory task sequence and keeps its file in sync.
//
// Every mutation rewrites the whole file through the Store before returning.
// Lookup misses and empty titles are no-ops, not errors; only save failures are
// reported.
package todo

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/tasklist/internal/model"
)

// Store is the persistence boundary for the list.
type Store interface {
	Load() []model.Task
	Save([]model.Task) error
}

// List is the task sequence owned by whichever front end drives the program.
type List struct {
	store Store
	tasks []model.Task
	now   func() time.Time
	newID func() string
}

// Option configures a List.
type Option func(*List)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *List) { l.now = now }
}

// WithIDFunc overrides id generation. Without it ids are fresh UUIDs.
func WithIDFunc(f func() string) Option {
	return func(l *List) { l.newID = f }
}

// New loads the sequence from store.
func New(store Store, opts ...Option) *List {
	l := &List{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.tasks = store.Load()
	if l.tasks == nil {
		l.tasks = []model.Task{}
	}
	return l
}

// Tasks returns a copy of the sequence in insertion order.
func (l *List) Tasks() []model.Task {
	return slices.Clone(l.tasks)
}

// Len returns the number of tasks.
func (l *List) Len() int { return len(l.tasks) }

// Get returns the task with id.
func (l *List) Get(id string) (model.Task, bool) {
	if i := l.index(id); i >= 0 {
		return l.tasks[i], true
	}
	return model.Task{}, false
}

// Stats counts done and pending tasks.
func (l *List) Stats() (done, pending int) {
	for _, t := range l.tasks {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

// Add appends a new task and persists. added is false, and nothing is saved,
// when title is empty after trimming.
func (l *List) Add(title string) (task model.Task, added bool, err error) {
	var ok bool
	if l.newID != nil {
		task, ok = model.NewTaskWithID(l.newID(), title, l.now())
	} else {
		task, ok = model.NewTask(title, l.now())
	}
	if !ok {
		return model.Task{}, false, nil
	}
	l.tasks = append(l.tasks, task)
	if err := l.persist(); err != nil {
		return task, true, err
	}
	return task, true, nil
}

// Toggle flips done on the task with id and persists. A miss is a no-op.
func (l *List) Toggle(id string) (found bool, err error) {
	i := l.index(id)
	if i < 0 {
		return false, nil
	}
	l.tasks[i].Done = !l.tasks[i].Done
	return true, l.persist()
}

// Remove drops the task with id and persists. A miss is a no-op.
func (l *List) Remove(id string) (found bool, err error) {
	i := l.index(id)
	if i < 0 {
		return false, nil
	}
	l.tasks = slices.Delete(l.tasks, i, i+1)
	return true, l.persist()
}

// Resolve maps a user reference to a task id. ref may be a full id, a unique
// id prefix, or a 1-based position in the list. Only refs that look like a
// position (no leading zero, no wider than the list length) are read as one,
// so all-digit short ids still resolve by prefix.
func (l *List) Resolve(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	if l.index(ref) >= 0 {
		return ref, true
	}
	if n, ok := l.position(ref); ok {
		return l.tasks[n-1].ID, true
	}
	match := ""
	for _, t := range l.tasks {
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", false
			}
			match = t.ID
		}
	}
	return match, match != ""
}

func (l *List) position(ref string) (int, bool) {
	if strings.HasPrefix(ref, "0") || len(ref) > len(strconv.Itoa(len(l.tasks))) {
		return 0, false
	}
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(l.tasks) {
		return 0, false
	}
	return n, true
}

func (l *List) index(id string) int {
	return slices.IndexFunc(l.tasks, func(t model.Task) bool { return t.ID == id })
}

func (l *List) persist() error {
	if err := l.store.Save(l.tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
