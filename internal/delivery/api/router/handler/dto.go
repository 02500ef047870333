// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"checklist/internal/domain/entity"
	"checklist/internal/usecase"
)

// IdentityResponse is the public view of an identity. It never carries the credential.
type IdentityResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Role         string    `json:"role"`
	EmployeeCode string    `json:"employee_code,omitempty"`
	CompanyCode  string    `json:"company_code,omitempty"`
	GoogleLinked bool      `json:"google_linked"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthResponse is returned by every endpoint that signs an identity in.
type AuthResponse struct {
	Identity  *IdentityResponse `json:"identity"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
}

func toIdentityResponse(identity *entity.Identity) *IdentityResponse {
	return &IdentityResponse{
		ID:           identity.ID.String(),
		Email:        identity.Email,
		Name:         identity.Name,
		AvatarURL:    identity.AvatarURL,
		Role:         identity.Role.String(),
		EmployeeCode: identity.EmployeeCode,
		CompanyCode:  identity.CompanyCode,
		GoogleLinked: identity.IsLinked(),
		CreatedAt:    identity.CreatedAt,
	}
}

func toIdentityResponses(identities []*entity.Identity) []*IdentityResponse {
	out := make([]*IdentityResponse, 0, len(identities))
	for _, identity := range identities {
		out = append(out, toIdentityResponse(identity))
	}

	return out
}

func toAuthResponse(output *usecase.AuthOutput) *AuthResponse {
	return &AuthResponse{
		Identity:  toIdentityResponse(output.Identity),
		Token:     output.Token.Value,
		ExpiresAt: output.Token.ExpiresAt,
	}
}
