package safego

import (
	"go.uber.org/zap"
)

// Go launches a goroutine with panic recovery.
// A panic is logged with its stack and the goroutine exits cleanly
// instead of crashing the process.
//
// Usage:
//
//	safego.Go(logger, "task-sweeper", func() {
//	    // work that might panic
//	})
func Go(logger *zap.Logger, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Goroutine panicked",
					zap.String("goroutine", name),
					zap.Any("panic", r),
					zap.Stack("stack"),
				)
			}
		}()
		fn()
	}()
}
