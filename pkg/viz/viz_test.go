package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astromechza/task-tracker/pkg/journal"
	"github.com/astromechza/task-tracker/pkg/task"
)

func TestLabelAndRender(t *testing.T) {
	j, err := journal.New()
	require.NoError(t, err)
	store := task.NewStore().WithObserver(j)
	store.Create(task.Task{Title: "A"})
	store.Create(task.Task{Title: "B"})
	require.NoError(t, store.Delete(1))

	doc, err := j.Snapshot()
	require.NoError(t, err)
	changes, err := doc.Changes()
	require.NoError(t, err)
	require.Len(t, changes, 4)

	label, err := Label(doc, changes[2])
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(label, "create task 2 (2 tasks)"), label)

	label, err = Label(doc, changes[3])
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(label, "delete task 1 (1 tasks)"), label)

	out := filepath.Join(t.TempDir(), "history.svg")
	require.NoError(t, RenderDocToSvg(doc, out))
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<svg")
}
