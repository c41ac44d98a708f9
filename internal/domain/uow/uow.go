package uow

import (
	"context"

	"seatime-backend/internal/domain/testimonial"
)

type Repos struct {
	Testimonials testimonial.Repository
}

type UnitOfWork interface {
	// lock the testimonial holding token first, then pass it in
	WithinSignoffTx(ctx context.Context, token string, fn func(r Repos, t *testimonial.Testimonial) error) error
}
