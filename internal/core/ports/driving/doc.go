// Package driving provides interfaces for the application's entry
// points (primary/inbound ports).
//
// These interfaces are implemented by the services in
// internal/core/services and consumed by the driving adapters (CLI, MCP
// server, directory watcher). Each operation takes an explicit typed
// request; there are no loosely-typed event maps.
package driving
