package registration

import (
	"context"
	"strings"
)

// Service manages the registrant lifecycle: validate, sanitize, persist.
type Service struct {
	repo Repository
}

// NewService creates a new registration service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates and sanitizes a submission and stores the registrant.
// Rejected submissions return a *ValidationError; a duplicate email surfaces
// as ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, sub Submission) (Registrant, error) {
	if msgs := Validate(sub); len(msgs) > 0 {
		return Registrant{}, &ValidationError{Messages: msgs}
	}

	reg := Registrant{
		Nombre:   sanitize(sub.Nombre),
		Apellido: sanitize(sub.Apellido),
		Email:    strings.ToLower(sanitize(sub.Email)),
		Telefono: sanitize(sub.Telefono),
		Pais:     sanitize(sub.Pais),
	}

	return s.repo.Create(ctx, reg)
}

// List returns all registrants, most recently registered first.
func (s *Service) List(ctx context.Context) ([]Registrant, error) {
	return s.repo.List(ctx)
}
