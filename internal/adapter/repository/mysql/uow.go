package mysql

import (
	"context"

	"seatime-backend/internal/domain/testimonial"
	"seatime-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinSignoffTx(ctx context.Context, token string, fn func(r uow.Repos, t *testimonial.Testimonial) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{Testimonials: &TestimonialRepository{db: tx}}
		// lock the row up-front so concurrent consumers queue behind us
		t, err := r.Testimonials.GetBySignoffTokenForUpdate(ctx, token)
		if err != nil {
			return err
		}
		return fn(r, t)
	})
}
