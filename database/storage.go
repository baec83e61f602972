package database

// Storage is the interface the rest of the application talks to for
// persistence. GetDB exposes the underlying driver handle for handlers
// that need direct query access.
type Storage interface {
	Init() error
	Close() error
	HealthCheck() error
	GetDB() interface{}
}
