package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowNotReadyBeforeFill(t *testing.T) {
	w := New(4)

	for i := 0; i < 3; i++ {
		assert.False(t, w.Ready())
		assert.Nil(t, w.Snapshot())
		w.Push(float64(i))
	}

	assert.False(t, w.Ready())
	w.Push(3)
	assert.True(t, w.Ready())
}

func TestWindowReadyIsPermanent(t *testing.T) {
	w := New(2)
	w.Push(1)
	w.Push(2)

	for i := 0; i < 10; i++ {
		w.Push(float64(i))
		assert.True(t, w.Ready())
	}
}

func TestWindowSnapshotChronologicalOrder(t *testing.T) {
	// После k > N записей снимок содержит ровно последние N значений,
	// старые первыми, независимо от точки оборота.
	w := New(4)
	for i := 1; i <= 10; i++ {
		w.Push(float64(i))
	}

	snap := w.Snapshot()
	require.Len(t, snap, 4)
	assert.Equal(t, []float64{7, 8, 9, 10}, snap)
}

func TestWindowSnapshotExactFill(t *testing.T) {
	w := New(3)
	w.Push(5)
	w.Push(6)
	w.Push(7)

	assert.Equal(t, []float64{5, 6, 7}, w.Snapshot())
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, 3, w.Capacity())
}

func TestWindowSnapshotIsCopy(t *testing.T) {
	w := New(2)
	w.Push(1)
	w.Push(2)

	snap := w.Snapshot()
	snap[0] = 99
	assert.Equal(t, []float64{1, 2}, w.Snapshot())
}

func TestWindowLenBeforeFill(t *testing.T) {
	w := New(4)
	assert.Equal(t, 0, w.Len())
	w.Push(1)
	w.Push(2)
	assert.Equal(t, 2, w.Len())
}
