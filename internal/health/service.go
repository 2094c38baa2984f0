package health

import (
	"time"

	"hrmaturity-backend/internal/shared/util"
)

// Status is the liveness payload.
type Status struct {
	Status          string `json:"status"`
	Timestamp       string `json:"timestamp"`
	Version         string `json:"version"`
	Lab45Configured bool   `json:"lab45Configured"`
}

// Service encapsulates health-related checks.
type Service struct {
	Version              string
	CompletionConfigured bool
	Now                  func() time.Time
}

// NewService constructs a new health service.
func NewService(version string, completionConfigured bool) *Service {
	return &Service{Version: version, CompletionConfigured: completionConfigured, Now: time.Now}
}

// Status returns the health payload. lab45Configured reports whether the active
// completion provider has credentials.
func (s *Service) Status() Status {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	version := s.Version
	if version == "" {
		version = "1.0.0"
	}
	return Status{
		Status:          "healthy",
		Timestamp:       util.ISOTimestamp(now()),
		Version:         version,
		Lab45Configured: s.CompletionConfigured,
	}
}
