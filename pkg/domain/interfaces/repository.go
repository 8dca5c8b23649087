package interfaces

// Repository bundles the persistent stores used by the resolution engine.
// Implementations live in pkg/repository (firestore for production,
// memory for development and tests).
type Repository interface {
	Override() OverrideRepository
	Selection() SelectionRepository
	Close() error
}
