package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	testimonialDomain "seatime-backend/internal/domain/testimonial"
	"seatime-backend/internal/domain/uow"
	"seatime-backend/pkg/id"
)

func TestGormUoW_WithinSignoffTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	repo := NewTestimonialRepository(db)

	v := seedVessel(t, db)
	token := id.NewID32()
	createTestimonial(t, db, makeTestimonial(v.ID, token))

	if err := guow.WithinSignoffTx(ctx, token, func(r uow.Repos, tm *testimonialDomain.Testimonial) error {
		if tm == nil || tm.SignoffToken != token || tm.Status != testimonialDomain.StatusPending {
			t.Fatalf("unexpected testimonial passed to fn: %+v", tm)
		}
		return r.Testimonials.ApplySignoff(ctx, tm.ID, testimonialDomain.SignoffUpdate{
			Status: testimonialDomain.StatusApproved,
			UsedAt: time.Now().UTC(),
		})
	}); err != nil {
		t.Fatalf("WithinSignoffTx commit err: %v", err)
	}

	got, err := repo.GetBySignoffToken(ctx, token)
	if err != nil {
		t.Fatalf("GetBySignoffToken post-commit: %v", err)
	}
	if got.Status != testimonialDomain.StatusApproved || got.SignoffUsedAt == nil {
		t.Fatalf("transition not persisted: %+v", got)
	}
}

func TestGormUoW_WithinSignoffTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	repo := NewTestimonialRepository(db)

	v := seedVessel(t, db)
	token := id.NewID32()
	createTestimonial(t, db, makeTestimonial(v.ID, token))

	sentinel := errors.New("stop")

	_ = guow.WithinSignoffTx(ctx, token, func(r uow.Repos, tm *testimonialDomain.Testimonial) error {
		if err := r.Testimonials.ApplySignoff(ctx, tm.ID, testimonialDomain.SignoffUpdate{
			Status: testimonialDomain.StatusApproved,
			UsedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
		return sentinel // force rollback
	})

	got, err := repo.GetBySignoffToken(ctx, token)
	if err != nil {
		t.Fatalf("post-rollback GetBySignoffToken: %v", err)
	}
	if got.Status != testimonialDomain.StatusPending {
		t.Fatalf("expected pending after rollback, got %s", got.Status)
	}
}

func TestGormUoW_WithinSignoffTx_TokenNotFound(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)

	err := guow.WithinSignoffTx(ctx, "missing-token", func(r uow.Repos, tm *testimonialDomain.Testimonial) error {
		t.Fatalf("callback should not be called when token missing")
		return nil
	})
	if !errors.Is(err, testimonialDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
