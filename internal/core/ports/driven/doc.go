// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Fetcher: Retrieves raw pages from configured sources
//   - DocumentSource: Reads processed/chunked document files
//   - DocumentStore: Relational persistence for documents and chunks
//   - EmbeddingService: Generates vector embeddings from text
//   - VectorIndex: Accumulates and persists the similarity index
//   - RunTracker: Records per-stage run outcomes and metrics
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, normaliser, or processor package
package driven
