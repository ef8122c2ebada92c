// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// starting and stopping multiple workers in a unified way.
package workers

// Worker is the interface that must be implemented by any background worker.
//
// Run must not block: implementations start their own goroutines or
// schedulers. Stop blocks until in-flight work has finished.
type Worker interface {
	Run()
	Stop()
}
