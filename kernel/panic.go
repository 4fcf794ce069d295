package kernel

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// PanicInfo describes a task whose Run panicked. Stack is captured on the
// task's goroutine while it unwinds.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

// panicState latches the first task panic for the whole process. Every task
// goroutine recovers in runTask; only the first recovery reaches the handler.
var panicState struct {
	once    sync.Once
	active  atomic.Bool
	handler atomic.Pointer[func(PanicInfo)]
}

// InPanicMode reports whether any task has panicked since process start.
func InPanicMode() bool {
	return panicState.active.Load()
}

// SetPanicHandler installs the function that receives the first task panic.
// It runs on the panicking task's goroutine and must not panic itself; it may
// block to freeze that task. A nil fn removes the handler.
func SetPanicHandler(fn func(PanicInfo)) {
	if fn == nil {
		panicState.handler.Store(nil)
		return
	}
	panicState.handler.Store(&fn)
}

func triggerPanic(info PanicInfo) {
	panicState.once.Do(func() {
		panicState.active.Store(true)
		info.Stack = debug.Stack()
		if fn := panicState.handler.Load(); fn != nil {
			(*fn)(info)
		}
	})
}
