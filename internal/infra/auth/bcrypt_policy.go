// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"checklist/config"
	"checklist/internal/domain/entity"
	domainerrors "checklist/internal/domain/errors"
	"checklist/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes.
const bcryptMaxPasswordBytes = 72

var defaultForbiddenWords = []string{"password", "admin", "qwerty", "letmein", "checklist"}

// bcryptPolicy implements service.PasswordPolicy on top of bcrypt.
type bcryptPolicy struct {
	cost     int
	strength config.PasswordStrengthConfig
	now      func() time.Time
}

// NewBcryptPolicy is the constructor used by Fx.
func NewBcryptPolicy(cfg *config.Config) service.PasswordPolicy {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	strength := defaultStrength()
	if cfg != nil && cfg.PasswordStrength != nil {
		strength = *cfg.PasswordStrength
	}

	return NewBcryptPolicyWithCost(cost, strength)
}

// NewBcryptPolicyWithCost builds a policy with an explicit cost, mostly for tests.
func NewBcryptPolicyWithCost(cost int, strength config.PasswordStrengthConfig) service.PasswordPolicy {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptPolicy{cost: cost, strength: strength, now: time.Now}
}

func defaultStrength() config.PasswordStrengthConfig {
	return config.PasswordStrengthConfig{
		MinLength:        8,
		MaxLength:        bcryptMaxPasswordBytes,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
	}
}

// Hash generates a salted hash from a plaintext secret.
func (p *bcryptPolicy) Hash(secret string) (entity.Credential, error) {
	if secret == "" {
		return entity.Credential{}, domainerrors.ErrPolicy.WithDetails("secret must not be empty")
	}
	if len(secret) > bcryptMaxPasswordBytes {
		return entity.Credential{}, domainerrors.ErrPolicy.WithDetails("secret exceeds 72 bytes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), p.cost)
	if err != nil {
		return entity.Credential{}, errors.Wrap(err, "failed to hash secret")
	}

	return entity.LocalCredential(string(hash)), nil
}

// Verify never compares anything against a placeholder.
func (p *bcryptPolicy) Verify(candidate string, credential entity.Credential) bool {
	if credential.Kind() != entity.CredentialLocal {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(credential.Hash()), []byte(candidate)) == nil
}

// NewPlaceholder issues a credential that can never be verified.
func (p *bcryptPolicy) NewPlaceholder(now time.Time) entity.Credential {
	if now.IsZero() {
		now = p.now()
	}

	return entity.ExternalPlaceholderCredential(now)
}

// ValidateStrength checks a user-chosen secret against the configured rules.
func (p *bcryptPolicy) ValidateStrength(secret string) error {
	rules := p.strength
	length := len([]rune(secret))

	if rules.MinLength > 0 && length < rules.MinLength {
		return domainerrors.ErrPasswordStrength.WithDetails("must be at least " + strconv.Itoa(rules.MinLength) + " characters long")
	}
	maxBytes := bcryptMaxPasswordBytes
	if rules.MaxLength > 0 && rules.MaxLength < maxBytes {
		maxBytes = rules.MaxLength
	}
	if len(secret) > maxBytes {
		return domainerrors.ErrPasswordStrength.WithDetails("must be at most " + strconv.Itoa(maxBytes) + " bytes long")
	}
	if rules.RequireLowercase && !hasLowercase(secret) {
		return domainerrors.ErrPasswordStrength.WithDetails("must contain at least one lowercase letter")
	}
	if rules.RequireUppercase && !hasUppercase(secret) {
		return domainerrors.ErrPasswordStrength.WithDetails("must contain at least one uppercase letter")
	}
	if rules.RequireNumbers && !hasNumbers(secret) {
		return domainerrors.ErrPasswordStrength.WithDetails("must contain at least one number")
	}
	if rules.RequireSpecial && !hasSpecialChars(secret) {
		return domainerrors.ErrPasswordStrength.WithDetails("must contain at least one special character")
	}
	if containsForbiddenWords(secret, defaultForbiddenWords) {
		return domainerrors.ErrPasswordStrength.WithDetails("contains forbidden words")
	}

	return nil
}

func hasUppercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func hasLowercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func hasNumbers(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func hasSpecialChars(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}) >= 0
}

func containsForbiddenWords(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, word := range words {
		if strings.Contains(lower, word) {
			return true
		}
	}

	return false
}
