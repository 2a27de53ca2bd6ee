// Package journal mirrors task store mutations into an automerge document so that the
// history of a server run can be dumped and inspected afterwards. The journal is never
// read back into a store.
package journal

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/automerge/automerge-go"

	"github.com/astromechza/task-tracker/pkg/task"
)

const tasksKey = "tasks"

type Journal struct {
	mu  sync.Mutex
	doc *automerge.Doc
}

func New() (*Journal, error) {
	doc := automerge.New()
	if err := doc.Path(tasksKey).Set(automerge.NewMap()); err != nil {
		return nil, fmt.Errorf("failed to create tasks map: %w", err)
	}
	if _, err := doc.Commit("init", automerge.CommitOptions{AllowEmpty: true}); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return &Journal{doc: doc}, nil
}

func Load(raw []byte) (*Journal, error) {
	doc, err := automerge.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load doc: %w", err)
	}
	return &Journal{doc: doc}, nil
}

func (j *Journal) TaskCreated(t task.Task) {
	j.put(t, "create")
}

func (j *Journal) TaskUpdated(t task.Task) {
	j.put(t, "update")
}

func (j *Journal) TaskDeleted(id int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.doc.Path(tasksKey).Map().Delete(strconv.Itoa(id)); err != nil {
		slog.Error("failed to journal delete", "id", id, "err", err)
		return
	}
	j.commit(fmt.Sprintf("delete task %d", id))
}

func (j *Journal) put(t task.Task, verb string) {
	raw, err := json.Marshal(t)
	if err != nil {
		slog.Error("failed to encode task", "id", t.ID, "err", err)
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.doc.Path(tasksKey, strconv.Itoa(t.ID)).Set(string(raw)); err != nil {
		slog.Error("failed to journal "+verb, "id", t.ID, "err", err)
		return
	}
	j.commit(fmt.Sprintf("%s task %d", verb, t.ID))
}

// commit must be called with mu held.
func (j *Journal) commit(msg string) {
	if _, err := j.doc.Commit(msg); err != nil {
		slog.Error("failed to commit doc", "msg", msg, "err", err)
	}
}

func (j *Journal) Save() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.doc.Save()
}

// Snapshot returns an independent copy of the underlying document.
func (j *Journal) Snapshot() (*automerge.Doc, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.doc.Fork()
}

func (j *Journal) Changes() ([]*automerge.Change, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.doc.Changes()
}

// Tasks returns the journaled tasks ordered by id, which is also store order.
func (j *Journal) Tasks() ([]task.Task, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return TasksOf(j.doc)
}

// TasksOf reads the tasks held by a journal document, ordered by id.
func TasksOf(doc *automerge.Doc) ([]task.Task, error) {
	keys, err := doc.Path(tasksKey).Map().Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	out := make([]task.Task, 0, len(keys))
	for _, k := range keys {
		value, err := doc.Path(tasksKey, k).Get()
		if err != nil {
			return nil, fmt.Errorf("failed to get task %s: %w", k, err)
		}
		raw, ok := value.Interface().(string)
		if !ok {
			return nil, fmt.Errorf("task %s is not a string", k)
		}
		var t task.Task
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			return nil, fmt.Errorf("failed to decode task %s: %w", k, err)
		}
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b task.Task) int {
		return a.ID - b.ID
	})
	return out, nil
}
