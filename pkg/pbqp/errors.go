package pbqp

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common sentinel errors
var (
	ErrInfeasible        = errors.New("no finite-cost assignment exists")
	ErrSolverTimeout     = errors.New("fallback search exceeded its bound")
	ErrUnknownNode       = errors.New("unknown node")
	ErrSelfEdge          = errors.New("edge endpoints must differ")
	ErrDimensionMismatch = errors.New("cost matrix dimensions do not match node options")
	ErrInvalidCost       = errors.New("costs must be non-negative or +Inf")
	ErrNoOptions         = errors.New("node has no options")
)

// InfeasibleError names the part of the graph that made every labeling forbidden.
type InfeasibleError struct {
	Op     string   // Reduction or phase that detected it (e.g., "R1", "search")
	Nodes  []NodeID // Nodes whose options were all forbidden
	Edges  []EdgeID // Edges involved in the folding or the final violation
	Reason string
}

// Error implements the error interface.
func (e *InfeasibleError) Error() string {
	var b strings.Builder
	b.WriteString(ErrInfeasible.Error())
	if e.Op != "" {
		fmt.Fprintf(&b, " (%s)", e.Op)
	}
	if len(e.Nodes) > 0 {
		fmt.Fprintf(&b, ": nodes %v", e.Nodes)
	}
	if len(e.Edges) > 0 {
		fmt.Fprintf(&b, ", edges %v", e.Edges)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}

// Unwrap returns ErrInfeasible for error chain support.
func (e *InfeasibleError) Unwrap() error {
	return ErrInfeasible
}

// TimeoutError reports that the bounded fallback search gave up.
type TimeoutError struct {
	Steps   int
	Limit   int
	Elapsed time.Duration
	Cause   error // context error, if the deadline came from the caller
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v after %d steps in %v: %v", ErrSolverTimeout, e.Steps, e.Elapsed, e.Cause)
	}
	return fmt.Sprintf("%v after %d steps (limit %d) in %v", ErrSolverTimeout, e.Steps, e.Limit, e.Elapsed)
}

// Unwrap returns ErrSolverTimeout for error chain support.
func (e *TimeoutError) Unwrap() error {
	return ErrSolverTimeout
}

// Is reports whether the target matches the timeout sentinel or the context cause.
func (e *TimeoutError) Is(target error) bool {
	if target == ErrSolverTimeout {
		return true
	}
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// IsInfeasible returns true if err reports an infeasible graph.
func IsInfeasible(err error) bool {
	return errors.Is(err, ErrInfeasible)
}

// IsTimeout returns true if err reports an exhausted search bound.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrSolverTimeout)
}
