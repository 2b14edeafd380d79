package memory

import (
	"context"
	"sync"

	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driven"
)

// AuditLog is an in-memory implementation of driven.AuditLog.
type AuditLog struct {
	mu      sync.Mutex
	records []domain.VerificationResult
}

var _ driven.AuditLog = (*AuditLog)(nil)

// NewAuditLog creates an empty in-memory audit log.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

// Record appends a completed verification result.
func (a *AuditLog) Record(_ context.Context, result domain.VerificationResult) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, result)
	return nil
}

// Records returns a copy of everything recorded so far.
func (a *AuditLog) Records() []domain.VerificationResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.VerificationResult, len(a.records))
	copy(out, a.records)
	return out
}
