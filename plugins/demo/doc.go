// Package demo holds example crates exercising the supervision protocol:
// a shared datachunk, a split-style counter, merged-style timer and flipper
// tasks, and an interactive prompt task that picks its outcome from console
// input.
package demo
