package uowmock

import (
	"context"
	"errors"

	"seatime-backend/internal/domain/testimonial"
	"seatime-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinSignoffTxFn func(ctx context.Context, token string, fn func(r uow.Repos, t *testimonial.Testimonial) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinSignoffTx(fn func(context.Context, string, func(uow.Repos, *testimonial.Testimonial) error) error) *UoW {
	m.WithinSignoffTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Passthrough runs WithinSignoffTx directly against repo without a transaction,
// loading the locked row through repo.GetBySignoffTokenForUpdate.
func Passthrough(repo testimonial.Repository) *UoW {
	repos := uow.Repos{Testimonials: repo}
	return &UoW{
		WithinSignoffTxFn: func(ctx context.Context, token string, fn func(uow.Repos, *testimonial.Testimonial) error) error {
			t, err := repo.GetBySignoffTokenForUpdate(ctx, token)
			if err != nil {
				return err
			}
			return fn(repos, t)
		},
	}
}

// Methods implementing UnitOfWork
func (m *UoW) WithinSignoffTx(ctx context.Context, token string, fn func(r uow.Repos, t *testimonial.Testimonial) error) error {
	if m.WithinSignoffTxFn != nil {
		return m.WithinSignoffTxFn(ctx, token, fn)
	}
	return errUnimplemented
}
