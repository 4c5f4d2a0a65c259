// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/courtside/registration/internal/validation"
)

// IssueTokenRequest contains the parameters for issuing a bearer token.
type IssueTokenRequest struct {
	ActorID     string `json:"actor_id"`
	ActorSecret string `json:"actor_secret"`
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ActorID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.ActorSecret,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
