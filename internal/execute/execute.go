// Package execute is the execution layer placeholder. All automation is
// structurally disabled in this system phase: Execute fails for every
// action regardless of the supplied authority, which itself always
// carries execution DENIED. The package exists so the boundary is
// documented in code and violations fail loudly.
package execute

import "github.com/ppiankov/loadwatch/internal/model"

// Error indicates an attempt to execute in a phase where execution is
// disabled. This is a safety boundary violation, not a transient failure.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// Execute always refuses. The action is ignored and the authority is
// accepted only to document the interface a future controlled-execution
// phase would check.
func Execute(action any, auth model.GlobalAuthority) error {
	_ = action
	_ = auth
	return &Error{msg: "Automation disabled in current system version"}
}
