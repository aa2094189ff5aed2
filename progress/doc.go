// Package progress keeps aggregated supervisor counters: live tasks, cycles
// run, reloads, stops and faults.
package progress
