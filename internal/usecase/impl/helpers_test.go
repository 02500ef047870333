package impl

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"checklist/config"
	"checklist/internal/domain/entity"
	"checklist/internal/domain/service"
	"checklist/internal/infra/auth"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPolicy() service.PasswordPolicy {
	return auth.NewBcryptPolicyWithCost(bcrypt.MinCost, config.PasswordStrengthConfig{
		MinLength:        8,
		RequireLowercase: true,
		RequireUppercase: true,
		RequireNumbers:   true,
	})
}

func newTestTokenService(t *testing.T) service.SessionTokenService {
	t.Helper()

	svc, err := auth.NewSessionTokenServiceWithClock("unit-test-secret", 7*24*time.Hour, 7*24*time.Hour, time.Now)
	require.NoError(t, err)

	return svc
}

// recordingMetrics captures AuthMetrics calls.
type recordingMetrics struct {
	mu          sync.Mutex
	logins      []string
	resolutions []string
	rejections  []string
	renewals    int
}

func (m *recordingMetrics) RecordLogin(origin entity.ClaimOrigin, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	outcome := "fail"
	if success {
		outcome = "ok"
	}
	m.logins = append(m.logins, string(origin)+":"+outcome)
}

func (m *recordingMetrics) RecordResolution(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolutions = append(m.resolutions, outcome)
}

func (m *recordingMetrics) RecordGuardRejection(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejections = append(m.rejections, reason)
}

func (m *recordingMetrics) RecordRenewal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renewals++
}

// countingPolicy counts Verify calls that reach a bcrypt comparison.
type countingPolicy struct {
	service.PasswordPolicy

	mu       sync.Mutex
	compares int
}

func (p *countingPolicy) Verify(candidate string, credential entity.Credential) bool {
	if credential.Kind() == entity.CredentialLocal {
		p.mu.Lock()
		p.compares++
		p.mu.Unlock()
	}

	return p.PasswordPolicy.Verify(candidate, credential)
}

func (p *countingPolicy) reset() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := p.compares
	p.compares = 0

	return n
}
