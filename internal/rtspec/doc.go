// Package rtspec defines the compact, self-describing type records the
// Slate runtime reflection layer consumes, together with their binary
// encoding.
//
// The wire enums (Class, DataType, Role) are owned here; the compiler-side
// export model reuses them directly so the two sides can never drift.
// Encoding flattens the node graph into an indexed pool, so descriptors
// shared between several parents stay shared after a round trip.
package rtspec
