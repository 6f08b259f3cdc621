package models

import (
	"container/heap"
	"sync"
	"time"
)

const (
	TaskConfirmOrder       = "ConfirmOrder"
	TaskPrepareOrder       = "PrepareOrder"
	TaskConfirmReservation = "ConfirmReservation"
)

// Task is a deferred state transition. Data identifies the entity the
// transition applies to (an order ID, a reservation acknowledgment).
type Task struct {
	Due  time.Time
	Type string
	Data interface{}
	seq  uint64
}

// TaskQueue is a priority queue of scheduled transitions, ordered by
// due time. Tasks scheduled for the same instant pop in insertion
// order, which is what keeps per-order transitions sequential.
type TaskQueue struct {
	tasks taskHeap
	mutex sync.Mutex
	seq   uint64
}

type taskHeap []*Task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].Due.Equal(h[j].Due) {
		return h[i].seq < h[j].seq
	}
	return h[i].Due.Before(h[j].Due)
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x interface{}) {
	*h = append(*h, x.(*Task))
}

func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// NewTaskQueue creates an empty TaskQueue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{tasks: make(taskHeap, 0)}
}

// Schedule adds a task to the queue.
func (tq *TaskQueue) Schedule(task *Task) {
	tq.mutex.Lock()
	defer tq.mutex.Unlock()
	tq.seq++
	task.seq = tq.seq
	heap.Push(&tq.tasks, task)
}

// PopDue removes and returns the earliest task due at or before now,
// or nil if nothing is due yet.
func (tq *TaskQueue) PopDue(now time.Time) *Task {
	tq.mutex.Lock()
	defer tq.mutex.Unlock()
	if len(tq.tasks) == 0 || tq.tasks[0].Due.After(now) {
		return nil
	}
	return heap.Pop(&tq.tasks).(*Task)
}

// Peek returns the earliest task without removing it.
func (tq *TaskQueue) Peek() *Task {
	tq.mutex.Lock()
	defer tq.mutex.Unlock()
	if len(tq.tasks) == 0 {
		return nil
	}
	return tq.tasks[0]
}

// IsEmpty returns true if the queue is empty.
func (tq *TaskQueue) IsEmpty() bool {
	tq.mutex.Lock()
	defer tq.mutex.Unlock()
	return len(tq.tasks) == 0
}

// Len returns the number of scheduled tasks.
func (tq *TaskQueue) Len() int {
	tq.mutex.Lock()
	defer tq.mutex.Unlock()
	return len(tq.tasks)
}
