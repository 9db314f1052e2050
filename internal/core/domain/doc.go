// Package domain defines the core business entities for Finsight.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Artifact: The extracted text/tables of one uploaded document
//   - ArtifactKey: Structured (group, file) identity of an artifact
//   - Group: A named collection of related documents ("company")
//   - Session: One persisted conversation
//   - AssembledContext: Token-bounded context built from selected artifacts
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
