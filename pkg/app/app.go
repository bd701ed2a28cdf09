// Package app defines the runtime contract the cmd/* binaries start: the bridge
// node, the validator and the relayer each provide a Runner.
package app

// Runner represents a runnable application component.
type Runner interface {
	Run() error
}
