package engine

// RunContext is the mutable state the runner threads through one run. It
// replaces ambient globals: the procedure counter only ever moves forward,
// and Failures accumulates the exit statuses of the current procedure's
// unforgiven steps.
type RunContext struct {
	Counter      int
	Procedure    string
	Failures     int
	Permission   Permission
	ExitOnError  bool
	InlineOutput bool
}
