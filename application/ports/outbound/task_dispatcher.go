package outbound

// TaskDispatcher submits work to a shared worker pool. Submit returns an
// error when the pool cannot accept the task.
type TaskDispatcher interface {
	Submit(task func()) error
}
