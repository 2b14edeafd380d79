// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
//
// These interfaces are implemented by adapters in internal/adapters/driven
// and consumed by the services in internal/core/services. The store is the
// single authoritative home of Documents and Chunks; the collaborator
// services (embedding, reasoning, extraction, audit) are external systems
// the core calls out to, each of which may be absent in a degraded mode.
package driven
