// Package target models the codegen-facing machine types the export layer
// renders into: scalars, vectors, pointers, arrays and aggregates, plus a
// layout engine that answers size, alignment and field offsets for a
// concrete Target ABI.
//
// Aggregates support opaque-first construction: a struct can be created
// without a body and filled in later, which is how self-referential records
// are rendered without infinite recursion.
package target
