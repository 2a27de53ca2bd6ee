package task

import (
	"errors"
	"slices"
	"sync"
)

var ErrNotFound = errors.New("task not found")

// Observer is told about every successful mutation, in store order. It is called with
// the store lock held and must not call back into the store.
type Observer interface {
	TaskCreated(t Task)
	TaskUpdated(t Task)
	TaskDeleted(id int)
}

// Store holds the task list in memory. Ids come from a counter that only ever
// increments, so an id is never handed out twice even after its task is deleted.
type Store struct {
	mu       sync.Mutex
	tasks    []Task
	counter  int
	observer Observer
}

func NewStore() *Store {
	return &Store{tasks: make([]Task, 0), counter: 1}
}

// WithObserver attaches o to the store and returns the store.
func (s *Store) WithObserver(o Observer) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
	return s
}

func (s *Store) List() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

func (s *Store) Create(t Task) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.counter
	s.counter++
	s.tasks = append(s.tasks, t)
	if s.observer != nil {
		s.observer.TaskCreated(t)
	}
	return t
}

func (s *Store) Update(id int, t Task) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	t.ID = id
	s.tasks[i] = t
	if s.observer != nil {
		s.observer.TaskUpdated(t)
	}
	return t, nil
}

func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	if s.observer != nil {
		s.observer.TaskDeleted(id)
	}
	return nil
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool {
		return t.ID == id
	})
}
