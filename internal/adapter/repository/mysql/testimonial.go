package mysql

import (
	"context"
	"errors"

	testimonialDomain "seatime-backend/internal/domain/testimonial"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TestimonialRepository struct{ db *gorm.DB }

func NewTestimonialRepository(db *gorm.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

func (r *TestimonialRepository) GetBySignoffToken(ctx context.Context, token string) (*testimonialDomain.Testimonial, error) {
	return r.getBySignoffToken(r.db.WithContext(ctx), token)
}

func (r *TestimonialRepository) GetBySignoffTokenForUpdate(ctx context.Context, token string) (*testimonialDomain.Testimonial, error) {
	q := r.db.WithContext(ctx)
	// sqlite has no row locks; its writer lock already serialises the tx
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.getBySignoffToken(q, token)
}

func (r *TestimonialRepository) getBySignoffToken(q *gorm.DB, token string) (*testimonialDomain.Testimonial, error) {
	var out testimonialDomain.Testimonial
	res := q.Preload("Vessel").
		Where("signoff_token = ?", token).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, testimonialDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *TestimonialRepository) ApplySignoff(ctx context.Context, id string, u testimonialDomain.SignoffUpdate) error {
	cols := map[string]any{
		"status":          u.Status,
		"signoff_used_at": u.UsedAt,
		"updated_at":      u.UsedAt,
	}
	if u.Notes != nil {
		cols["notes"] = *u.Notes
	}
	if u.RejectionReason != nil {
		cols["rejection_reason"] = *u.RejectionReason
	}

	// compare-and-swap: only a pending, unused row may transition
	res := r.db.WithContext(ctx).
		Model(&testimonialDomain.Testimonial{}).
		Where("id = ? AND status = ? AND signoff_used_at IS NULL", id, testimonialDomain.StatusPending).
		Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return testimonialDomain.ErrAlreadyConsumed
	}
	return nil
}
