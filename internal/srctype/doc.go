// Package srctype is the export layer's read-only view of the host
// front-end's type system: type descriptors, record declarations with their
// layout oracle, and variable declarations that anchor diagnostics.
//
// The export layer only inspects these values; it never mutates them. The
// real Slate front-end materialises this view from its semantic analysis,
// and the slatec driver builds the same view from declaration manifests.
package srctype
