package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopDueOrdersByDueTime(t *testing.T) {
	tq := NewTaskQueue()
	base := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tq.Schedule(&Task{Due: base.Add(8 * time.Second), Type: TaskPrepareOrder})
	tq.Schedule(&Task{Due: base.Add(3 * time.Second), Type: TaskConfirmOrder})

	assert.Nil(t, tq.PopDue(base))
	assert.Nil(t, tq.PopDue(base.Add(2*time.Second)))

	task := tq.PopDue(base.Add(10 * time.Second))
	require.NotNil(t, task)
	assert.Equal(t, TaskConfirmOrder, task.Type)

	task = tq.PopDue(base.Add(10 * time.Second))
	require.NotNil(t, task)
	assert.Equal(t, TaskPrepareOrder, task.Type)

	assert.True(t, tq.IsEmpty())
}

func TestPopDueBreaksTiesByScheduleOrder(t *testing.T) {
	tq := NewTaskQueue()
	due := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tq.Schedule(&Task{Due: due, Type: TaskConfirmOrder, Data: "first"})
	tq.Schedule(&Task{Due: due, Type: TaskConfirmOrder, Data: "second"})
	tq.Schedule(&Task{Due: due, Type: TaskConfirmOrder, Data: "third"})

	for _, want := range []string{"first", "second", "third"} {
		task := tq.PopDue(due)
		require.NotNil(t, task)
		assert.Equal(t, want, task.Data)
	}
}

func TestPeekDoesNotRemove(t *testing.T) {
	tq := NewTaskQueue()
	due := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	tq.Schedule(&Task{Due: due, Type: TaskConfirmReservation})

	require.NotNil(t, tq.Peek())
	assert.Equal(t, 1, tq.Len())
}
