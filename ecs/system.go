package ecs

// System is one step of a frame. Systems may declare Query and Singleton
// fields; Scheduler.Register binds them to the scheduler's storage.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is handed to every system during Scheduler.Once
type UpdateFrame struct {
	DeltaTime float64
	Tick      uint64
	Commands  *Commands
	Storage   *Storage
}
