package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Service defaults
const (
	DefaultServiceEndpoint = "http://localhost:5000/api/generate"
	DefaultHealthEndpoint  = "http://localhost:5000/health"
	DefaultListenAddr      = ":5000"
	DefaultOllamaEndpoint  = "http://localhost:11434/api/generate"
	DefaultModelName       = "llama3.2"
	// DefaultProviderTimeout bounds calls from `wai serve` to the upstream model.
	DefaultProviderTimeout = 120 * time.Second
	// DefaultHealthTimeout bounds the doctor's health check.
	DefaultHealthTimeout = 5 * time.Second
)

// History constants
const (
	HistoryBackendMemory = "memory"
	HistoryBackendSQLite = "sqlite"
	// DefaultHistoryDisplayLimit is the number of entries shown by default
	DefaultHistoryDisplayLimit = 20
)
