// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ArtifactStore: Extracted document persistence
//   - GroupStore: Group registry persistence
//   - SessionStore: Conversation history persistence
//   - RawFileStore: Raw uploaded document persistence
//   - Extractor: Text/table extraction from uploaded documents
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Hosted model access. Without it, questions cannot be
//     asked but every store operation still works.
//   - PromptStore: Customisable prompt templates. Without it, services
//     fall back to embedded defaults.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
