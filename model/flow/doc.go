// Package flow defines TaskControlFlow, the closed set of outcomes a task
// cycle can report, and the per-task actions a supervisor derives from them.
package flow
