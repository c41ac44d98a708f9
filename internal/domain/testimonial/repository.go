package testimonial

import "context"

type Repository interface {
	// GetBySignoffToken loads the row (vessel preloaded) whose signoff_token equals token.
	GetBySignoffToken(ctx context.Context, token string) (*Testimonial, error)

	// Same as GetBySignoffToken but takes a row lock where the dialect supports it.
	// Only meaningful inside a transaction.
	GetBySignoffTokenForUpdate(ctx context.Context, token string) (*Testimonial, error)

	// ApplySignoff writes the terminal transition only if the row is still pending and
	// unused. Returns ErrAlreadyConsumed when nothing matched.
	ApplySignoff(ctx context.Context, id string, u SignoffUpdate) error
}
