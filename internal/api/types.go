package api

// Framework describes a framework entry in a transport-friendly format.
type Framework struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Executor     string `json:"executor,omitempty"`
	Status       string `json:"status"`
	RegisteredAt string `json:"registeredAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// SlaveStatus aggregates slave runtime information for API consumers.
type SlaveStatus struct {
	SlaveID        int64  `json:"slaveId"`
	Registered     bool   `json:"registered"`
	SessionID      string `json:"sessionId"`
	StartedAt      string `json:"startedAt"`
	WorkDir        string `json:"workDir"`
	LogDir         string `json:"logDir"`
	RegistryDBPath string `json:"registryDbPath"`
	LockFilePath   string `json:"lockFilePath"`
	Frameworks     int    `json:"frameworks"`
	ActiveCount    int    `json:"activeFrameworks"`
}

// FrameworkListResponse wraps a collection of frameworks for API responses.
type FrameworkListResponse struct {
	Frameworks []Framework `json:"frameworks"`
}

// ErrorResponse is the JSON error envelope used by the /api endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
