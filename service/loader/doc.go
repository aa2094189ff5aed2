// Package loader is the attachment point between plugin crates and the host.
// A crate attaches its task and datachunk types under stable names; the host
// later constructs instances by name from configuration records.
//
// Attached types are tagged with their Kind at registration so construction
// never has to guess what a value is.
package loader
