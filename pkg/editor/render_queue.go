package editor

import "sync"

type Deferrer interface {
	Defer(fn func())
}

// RenderQueue holds work that must run after the current render pass.
// Flush runs every queued task once, in order. Tasks queued while flushing wait for the next Flush.
type RenderQueue struct {
	mu    sync.Mutex
	tasks []func()
}

func NewRenderQueue() *RenderQueue {
	return &RenderQueue{}
}

func (q *RenderQueue) Defer(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, fn)
}

func (q *RenderQueue) Flush() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

func (q *RenderQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
