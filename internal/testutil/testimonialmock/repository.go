package testimonialmock

import (
	"context"

	domain "seatime-backend/internal/domain/testimonial"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return context.Canceled; unset writes succeed.
type Repo struct {
	GetBySignoffTokenFn          func(ctx context.Context, token string) (*domain.Testimonial, error)
	GetBySignoffTokenForUpdateFn func(ctx context.Context, token string) (*domain.Testimonial, error)
	ApplySignoffFn               func(ctx context.Context, id string, u domain.SignoffUpdate) error
}

func (m *Repo) GetBySignoffToken(ctx context.Context, token string) (*domain.Testimonial, error) {
	if m.GetBySignoffTokenFn != nil {
		return m.GetBySignoffTokenFn(ctx, token)
	}
	return nil, context.Canceled
}

func (m *Repo) GetBySignoffTokenForUpdate(ctx context.Context, token string) (*domain.Testimonial, error) {
	if m.GetBySignoffTokenForUpdateFn != nil {
		return m.GetBySignoffTokenForUpdateFn(ctx, token)
	}
	return nil, context.Canceled
}

func (m *Repo) ApplySignoff(ctx context.Context, id string, u domain.SignoffUpdate) error {
	if m.ApplySignoffFn != nil {
		return m.ApplySignoffFn(ctx, id, u)
	}
	return nil
}
