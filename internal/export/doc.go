// Package export is the type-export layer of the Slate compiler: it decides
// which host types are legal to expose across the compiler/runtime boundary,
// builds a canonical deduplicated model of them, and renders that model into
// machine types for codegen and into rtspec records for the runtime
// reflection layer.
//
// The pipeline for one exported declaration is: exportability check →
// canonical name resolution → registry lookup-or-create → variant node
// construction → on-demand target-type and spec rendering. A Registry is
// scoped to one compilation unit and is not safe for concurrent use; units
// processed in parallel each own a registry.
package export
