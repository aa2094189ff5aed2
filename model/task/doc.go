// Package task defines the task instance contract. Two authoring styles are
// supported:
//
//   - split  – stateless behaviour (Impl) plus per-instance data
//   - merged – a Taskable value holding both behaviour and data
//
// Both are adapted into a single Instance that the supervisor drives. Each
// instance keeps its state behind one lock, taken once per cycle, so a cycle
// never observes a partial update made by a concurrent notification.
package task
