// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - KeyValueStore: Installation-scoped persistence for the client identifier
//   - ProductCatalog: The remote product search endpoint
//
// # Optional Interfaces
//
//   - Throttle: Client-side request pacing. Without it, requests are sent as
//     soon as they are made.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
