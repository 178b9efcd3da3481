// Package diag defines the diagnostic model shared by the export layer and
// the slatec CLI: severities, stable numeric codes, the Diagnostic value,
// the Bag collector, and the Reporter contract phases emit through.
//
// Diagnostics are plain values with no rendering logic; formatting lives in
// internal/diagfmt so the core stays side-effect free and serialisable.
package diag
