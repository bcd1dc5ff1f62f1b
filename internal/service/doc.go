// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// The service layer depends on domain entities, the generation pipeline, and
// repository interfaces (from store), but never on specific infrastructure
// implementations, maintaining the Dependency Inversion Principle.
package service
