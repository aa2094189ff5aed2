// Package identity defines the value types used to address crates, tasks and
// datachunks. Names are validated once when constructed and compared
// structurally afterwards, so they can be used as map keys and kept in
// ordered sets.
package identity
