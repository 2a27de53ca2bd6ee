package task

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(title string) Task {
	return Task{
		Title:       title,
		Description: "d",
		Status:      "Not Started",
		DueDate:     "2024-01-01",
		Priority:    "Low",
	}
}

func ids(tasks []Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestStore_EmptyList(t *testing.T) {
	s := NewStore()
	list := s.List()
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestStore_CreateAssignsSequentialIDs(t *testing.T) {
	s := NewStore()

	a := s.Create(sample("A"))
	assert.Equal(t, 1, a.ID)

	b := s.Create(sample("B"))
	assert.Equal(t, 2, b.ID)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, a, list[0])
	assert.Equal(t, b, list[1])
}

func TestStore_CreateIgnoresSuppliedID(t *testing.T) {
	s := NewStore()
	in := sample("A")
	in.ID = 99

	out := s.Create(in)
	assert.Equal(t, 1, out.ID)
	assert.Equal(t, []int{1}, ids(s.List()))
}

func TestStore_IDsNeverReused(t *testing.T) {
	s := NewStore()
	s.Create(sample("A"))
	s.Create(sample("B"))
	require.NoError(t, s.Delete(2))
	require.NoError(t, s.Delete(1))
	_, err := s.Update(3, sample("X"))
	assert.ErrorIs(t, err, ErrNotFound)

	c := s.Create(sample("C"))
	assert.Equal(t, 3, c.ID)
}

func TestStore_UpdateReplacesInPlace(t *testing.T) {
	s := NewStore()
	s.Create(sample("A"))
	b := s.Create(sample("B"))

	payload := Task{
		ID:          42,
		Title:       "A2",
		Description: "d",
		Status:      "Completed",
		DueDate:     "2024-01-01",
		Priority:    "High",
	}
	updated, err := s.Update(1, payload)
	require.NoError(t, err)

	payload.ID = 1
	assert.Equal(t, payload, updated)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, payload, list[0])
	assert.Equal(t, b, list[1])
}

func TestStore_DeleteKeepsRelativeOrder(t *testing.T) {
	s := NewStore()
	for _, title := range []string{"A", "B", "C", "D"} {
		s.Create(sample(title))
	}

	require.NoError(t, s.Delete(2))
	assert.Equal(t, []int{1, 3, 4}, ids(s.List()))

	require.NoError(t, s.Delete(4))
	assert.Equal(t, []int{1, 3}, ids(s.List()))
}

func TestStore_NotFoundLeavesListUnchanged(t *testing.T) {
	s := NewStore()
	s.Create(sample("A"))
	before := s.List()

	_, err := s.Update(7, sample("X"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(7), ErrNotFound)
	assert.Equal(t, before, s.List())
}

func TestStore_Scenario(t *testing.T) {
	s := NewStore()

	first := s.Create(sample("A"))
	assert.Equal(t, 1, first.ID)
	second := s.Create(sample("B"))
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, []int{1, 2}, ids(s.List()))

	updated, err := s.Update(1, Task{Title: "A2", Description: "d", Status: "Completed", DueDate: "2024-01-01", Priority: "High"})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ID)
	assert.Equal(t, "A2", updated.Title)
	assert.Equal(t, []Task{updated, second}, s.List())

	require.NoError(t, s.Delete(1))
	assert.Equal(t, []Task{second}, s.List())
	assert.ErrorIs(t, s.Delete(1), ErrNotFound)
}

func TestStore_ListReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Create(sample("A"))

	list := s.List()
	list[0].Title = "mutated"
	assert.Equal(t, "A", s.List()[0].Title)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	s := NewStore()
	const n = 200

	var wg sync.WaitGroup
	got := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got <- s.Create(sample("x")).ID
		}()
	}
	wg.Wait()
	close(got)

	seen := make([]int, 0, n)
	for id := range got {
		seen = append(seen, id)
	}
	sort.Ints(seen)
	for i, id := range seen {
		assert.Equal(t, i+1, id)
	}
	assert.Equal(t, seen, ids(s.List()))
}

type recordingObserver struct {
	events []string
}

func (r *recordingObserver) TaskCreated(t Task) { r.events = append(r.events, "create "+t.Title) }
func (r *recordingObserver) TaskUpdated(t Task) { r.events = append(r.events, "update "+t.Title) }
func (r *recordingObserver) TaskDeleted(id int) { r.events = append(r.events, "delete") }

func TestStore_ObserverSeesSuccessfulMutationsOnly(t *testing.T) {
	obs := &recordingObserver{}
	s := NewStore().WithObserver(obs)

	s.Create(sample("A"))
	_, _ = s.Update(1, sample("A2"))
	_, _ = s.Update(5, sample("nope"))
	_ = s.Delete(5)
	_ = s.Delete(1)

	assert.Equal(t, []string{"create A", "update A2", "delete"}, obs.events)
}
