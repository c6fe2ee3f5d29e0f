package todo

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/store/jsonstore"
)

// memStore records saves so tests can assert on persistence.
type memStore struct {
	initial []model.Task
	saved   [][]model.Task
	err     error
}

func (m *memStore) Load() []model.Task { return m.initial }

func (m *memStore) Save(tasks []model.Task) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, append([]model.Task(nil), tasks...))
	return nil
}

func (m *memStore) last() []model.Task {
	if len(m.saved) == 0 {
		return nil
	}
	return m.saved[len(m.saved)-1]
}

var fixedNow = time.Date(2026, time.October, 18, 14, 5, 0, 0, time.Local)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestList(store Store) *List {
	return New(store, WithClock(func() time.Time { return fixedNow }), WithIDFunc(seqIDs()))
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestNewNilLoadIsEmpty(t *testing.T) {
	l := newTestList(&memStore{})
	if l.Tasks() == nil || l.Len() != 0 {
		t.Errorf("Tasks = %#v", l.Tasks())
	}
}

func TestAdd(t *testing.T) {
	store := &memStore{}
	l := newTestList(store)

	task, added, err := l.Add("  Buy milk  ")
	if err != nil || !added {
		t.Fatalf("Add = %v, %v", added, err)
	}
	want := model.Task{ID: "id-1", Title: "Buy milk", Done: false, CreatedAt: "18/10/2026 14:05"}
	if task != want {
		t.Errorf("task = %+v, want %+v", task, want)
	}
	if !reflect.DeepEqual(store.last(), []model.Task{want}) {
		t.Errorf("saved = %+v", store.last())
	}
}

func TestAddDefaultIDsAreUUIDs(t *testing.T) {
	l := New(&memStore{}, WithClock(func() time.Time { return fixedNow }))
	a, _, err := l.Add("first")
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := l.Add("second")
	if err != nil {
		t.Fatal(err)
	}
	for _, task := range []model.Task{a, b} {
		if _, err := uuid.Parse(task.ID); err != nil {
			t.Errorf("ID %q is not a uuid: %v", task.ID, err)
		}
	}
	if a.ID == b.ID {
		t.Errorf("ids repeat: %s", a.ID)
	}
}

func TestAddEmptyTitleIsNoop(t *testing.T) {
	for _, title := range []string{"", " ", "\t\n  "} {
		store := &memStore{initial: []model.Task{{ID: "x", Title: "kept"}}}
		l := newTestList(store)

		_, added, err := l.Add(title)
		if err != nil || added {
			t.Errorf("Add(%q) = %v, %v", title, added, err)
		}
		if l.Len() != 1 {
			t.Errorf("Add(%q) changed the list: %+v", title, l.Tasks())
		}
		if len(store.saved) != 0 {
			t.Errorf("Add(%q) saved %d times", title, len(store.saved))
		}
	}
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	l := newTestList(&memStore{})
	for _, title := range []string{"A", "B", "C"} {
		if _, _, err := l.Add(title); err != nil {
			t.Fatal(err)
		}
	}
	if got := titles(l.Tasks()); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("order = %v", got)
	}
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	store := &memStore{}
	l := newTestList(store)
	task, _, _ := l.Add("Buy milk")

	found, err := l.Toggle(task.ID)
	if err != nil || !found {
		t.Fatalf("Toggle = %v, %v", found, err)
	}
	if got, _ := l.Get(task.ID); !got.Done {
		t.Error("expected done after first toggle")
	}
	if !store.last()[0].Done {
		t.Error("toggle was not persisted")
	}

	if _, err := l.Toggle(task.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := l.Get(task.ID); got.Done {
		t.Error("expected pending after second toggle")
	}
	if len(store.saved) != 3 {
		t.Errorf("saves = %d, want 3", len(store.saved))
	}
}

func TestToggleMissIsNoop(t *testing.T) {
	store := &memStore{initial: []model.Task{{ID: "a", Title: "A"}}}
	l := newTestList(store)

	found, err := l.Toggle("nope")
	if err != nil || found {
		t.Errorf("Toggle = %v, %v", found, err)
	}
	if len(store.saved) != 0 {
		t.Error("miss should not save")
	}
	if got, _ := l.Get("a"); got.Done {
		t.Error("miss changed another task")
	}
}

func TestRemove(t *testing.T) {
	store := &memStore{}
	l := newTestList(store)
	a, _, _ := l.Add("A")
	b, _, _ := l.Add("B")
	c, _, _ := l.Add("C")

	found, err := l.Remove(b.ID)
	if err != nil || !found {
		t.Fatalf("Remove = %v, %v", found, err)
	}
	if l.Len() != 2 {
		t.Fatalf("Len = %d", l.Len())
	}
	if _, ok := l.Get(b.ID); ok {
		t.Error("removed task still present")
	}
	if got := titles(store.last()); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Errorf("saved = %v", got)
	}
	if _, ok := l.Get(a.ID); !ok {
		t.Error("A missing")
	}
	if _, ok := l.Get(c.ID); !ok {
		t.Error("C missing")
	}
}

func TestRemoveMissIsNoop(t *testing.T) {
	initial := []model.Task{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}
	store := &memStore{initial: append([]model.Task(nil), initial...)}
	l := newTestList(store)

	found, err := l.Remove("zzz")
	if err != nil || found {
		t.Errorf("Remove = %v, %v", found, err)
	}
	if !reflect.DeepEqual(l.Tasks(), initial) {
		t.Errorf("list changed: %+v", l.Tasks())
	}
	if len(store.saved) != 0 {
		t.Error("miss should not save")
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	l := newTestList(&memStore{})
	l.Add("A")
	view := l.Tasks()
	view[0].Title = "mutated"
	if got := l.Tasks()[0].Title; got != "A" {
		t.Errorf("internal state leaked through Tasks(): %q", got)
	}
}

func TestStats(t *testing.T) {
	l := newTestList(&memStore{initial: []model.Task{
		{ID: "a", Done: true}, {ID: "b"}, {ID: "c", Done: true},
	}})
	done, pending := l.Stats()
	if done != 2 || pending != 1 {
		t.Errorf("Stats = %d, %d", done, pending)
	}
}

func TestSaveErrorPropagates(t *testing.T) {
	boom := errors.New("disk full")
	store := &memStore{initial: []model.Task{{ID: "a", Title: "A"}}}
	l := newTestList(store)
	store.err = boom

	if _, _, err := l.Add("B"); !errors.Is(err, boom) {
		t.Errorf("Add err = %v", err)
	}
	if _, err := l.Toggle("a"); !errors.Is(err, boom) {
		t.Errorf("Toggle err = %v", err)
	}
	if _, err := l.Remove("a"); !errors.Is(err, boom) {
		t.Errorf("Remove err = %v", err)
	}
}

func TestResolve(t *testing.T) {
	l := newTestList(&memStore{initial: []model.Task{
		{ID: "3f2a-1111", Title: "A"},
		{ID: "3f2b-2222", Title: "B"},
		{ID: "9c00-3333", Title: "C"},
		{ID: "42", Title: "numeric id"},
	}})

	tests := []struct {
		ref    string
		want   string
		wantOK bool
	}{
		{ref: "3f2a-1111", want: "3f2a-1111", wantOK: true},
		{ref: "9c", want: "9c00-3333", wantOK: true},
		{ref: "3f2b", want: "3f2b-2222", wantOK: true},
		{ref: "3f2", wantOK: false},
		{ref: "1", want: "3f2a-1111", wantOK: true},
		{ref: " 3 ", want: "9c00-3333", wantOK: true},
		{ref: "42", want: "42", wantOK: true},
		{ref: "0", wantOK: false},
		{ref: "5", wantOK: false},
		{ref: "zz", wantOK: false},
		{ref: "", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := l.Resolve(tt.ref)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Resolve(%q) = %q, %v; want %q, %v", tt.ref, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestResolveDigitShortIDs(t *testing.T) {
	l := newTestList(&memStore{initial: []model.Task{
		{ID: "aaaaaaaa-1111", Title: "A"},
		{ID: "bbbbbbbb-2222", Title: "B"},
		{ID: "cccccccc-3333", Title: "C"},
		{ID: "00000002-4444", Title: "D"},
		{ID: "20000000-5555", Title: "E"},
	}})

	tests := []struct {
		ref    string
		want   string
		wantOK bool
	}{
		{ref: "00000002", want: "00000002-4444", wantOK: true},
		{ref: "20000000", want: "20000000-5555", wantOK: true},
		{ref: "2", want: "bbbbbbbb-2222", wantOK: true},
		{ref: "02", wantOK: false},
		{ref: "0000", want: "00000002-4444", wantOK: true},
	}
	for _, tt := range tests {
		got, ok := l.Resolve(tt.ref)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Resolve(%q) = %q, %v; want %q, %v", tt.ref, got, ok, tt.want, tt.wantOK)
		}
	}
}

// The scenarios below run against the real JSON store.

func TestScenarioBuyMilk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	l := New(jsonstore.New(path))
	if l.Len() != 0 {
		t.Fatalf("expected empty start, got %d", l.Len())
	}

	task, added, err := l.Add("Buy milk")
	if err != nil || !added {
		t.Fatalf("Add = %v, %v", added, err)
	}
	if l.Len() != 1 || l.Tasks()[0].Done {
		t.Fatalf("after add: %+v", l.Tasks())
	}

	if _, err := l.Toggle(task.ID); err != nil {
		t.Fatal(err)
	}

	reloaded := New(jsonstore.New(path))
	got, ok := reloaded.Get(task.ID)
	if !ok || !got.Done || got.Title != "Buy milk" || got.CreatedAt != task.CreatedAt {
		t.Fatalf("reloaded = %+v, %v", got, ok)
	}

	if _, err := reloaded.Remove(task.ID); err != nil {
		t.Fatal(err)
	}
	if reloaded.Len() != 0 {
		t.Errorf("expected empty list, got %+v", reloaded.Tasks())
	}
	if n := New(jsonstore.New(path)).Len(); n != 0 {
		t.Errorf("file still has %d tasks", n)
	}
}

func TestScenarioOrderSurvivesToggles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	l := New(jsonstore.New(path))
	a, _, _ := l.Add("A")
	b, _, _ := l.Add("B")

	l.Toggle(b.ID)
	l.Toggle(a.ID)

	for _, tasks := range [][]model.Task{l.Tasks(), New(jsonstore.New(path)).Tasks()} {
		if got := titles(tasks); !reflect.DeepEqual(got, []string{"A", "B"}) {
			t.Errorf("order = %v", got)
		}
	}
}

func TestAddThenLoadYieldsOneNewTask(t *testing.T) {
	for _, title := range []string{"x", "  Write report ", "Ünïcödé ✨", strings.Repeat("long ", 40)} {
		path := filepath.Join(t.TempDir(), "tasks.json")
		l := New(jsonstore.New(path))
		l.Add("existing")
		before := New(jsonstore.New(path)).Tasks()

		if _, _, err := l.Add(title); err != nil {
			t.Fatal(err)
		}
		after := New(jsonstore.New(path)).Tasks()
		if len(after) != len(before)+1 {
			t.Fatalf("len after = %d, before = %d", len(after), len(before))
		}
		got := after[len(after)-1]
		if got.Title != strings.TrimSpace(title) || got.Done {
			t.Errorf("new task = %+v", got)
		}
	}
}
