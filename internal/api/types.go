package api

// QueryRequest is the body of POST /api/v1/rag/query. Nil limits are left
// out so the service falls back to its own defaults.
type QueryRequest struct {
	Query       string `json:"query"`
	MaxSections *int   `json:"max_sections,omitempty"`
	MaxDocs     *int   `json:"max_docs,omitempty"`
}

// QueryResponse is the answer returned by the service.
type QueryResponse struct {
	Answer         string   `json:"answer"`
	Sections       []string `json:"sections"`
	DocumentsUsed  int      `json:"documents_used"`
	ProcessingTime float64  `json:"processing_time"` // seconds
	Timestamp      string   `json:"timestamp"`
}

// HealthResponse is returned by GET /api/v1/rag/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// Healthy reports whether the service described itself as up.
func (h HealthResponse) Healthy() bool {
	return h.Status == "healthy" || h.Status == "ok"
}

// IntPtr is a small helper for filling the optional request limits.
func IntPtr(v int) *int { return &v }
