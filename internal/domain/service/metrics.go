package service

import "checklist/internal/domain/entity"

// AuthMetrics records authentication outcomes. Implementations must be safe for concurrent use.
type AuthMetrics interface {
	RecordLogin(origin entity.ClaimOrigin, success bool)
	RecordResolution(outcome string)
	RecordGuardRejection(reason string)
	RecordRenewal()
}

// Resolution outcomes reported to AuthMetrics.
const (
	ResolutionFound    = "found"
	ResolutionLinked   = "linked"
	ResolutionCreated  = "created"
	ResolutionRetried  = "retried"
	ResolutionConflict = "conflict"
)

// NopAuthMetrics discards every observation.
type NopAuthMetrics struct{}

func (NopAuthMetrics) RecordLogin(entity.ClaimOrigin, bool) {}
func (NopAuthMetrics) RecordResolution(string)              {}
func (NopAuthMetrics) RecordGuardRejection(string)          {}
func (NopAuthMetrics) RecordRenewal()                       {}
