package auth

import (
	"strings"

	"github.com/hbenali/childguard/internal/pkg/validator"
	apperrors "github.com/hbenali/childguard/pkg/errors"
)

// ValidateCreateUserRequest checks every field and reports all violations
// at once.
func ValidateCreateUserRequest(req *CreateUserRequest) error {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Village = strings.TrimSpace(strings.ToLower(req.Village))

	ve := apperrors.NewValidationError()

	if !validator.IsValidEmail(req.Email) {
		ve.Add("email", "a valid email address is required")
	}
	if len(req.Password) < 8 {
		ve.Add("password", "password must be at least 8 characters")
	}
	if req.FirstName == "" {
		ve.Add("firstName", "first name is required")
	}
	if req.LastName == "" {
		ve.Add("lastName", "last name is required")
	}
	if !Role(req.Role).Valid() {
		ve.Add("role", "role must be one of: mother, aunt, educator, psychologist, director, admin")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}
