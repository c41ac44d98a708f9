package testimonialmock

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "seatime-backend/internal/domain/testimonial"
)

func TestRepo_GetBySignoffToken(t *testing.T) {
	ctx := context.Background()
	want := &domain.Testimonial{ID: "T-1", SignoffToken: "tok"}

	// Uses provided func
	called := false
	m := &Repo{
		GetBySignoffTokenFn: func(gotCtx context.Context, token string) (*domain.Testimonial, error) {
			called = true
			if gotCtx != ctx {
				t.Fatalf("ctx mismatch")
			}
			if token != "tok" {
				t.Fatalf("token mismatch: got %s", token)
			}
			return want, nil
		},
	}
	got, err := m.GetBySignoffToken(ctx, "tok")
	if err != nil {
		t.Fatalf("GetBySignoffToken: unexpected err %v", err)
	}
	if got != want {
		t.Fatalf("GetBySignoffToken: want %+v, got %+v", want, got)
	}
	if !called {
		t.Fatalf("GetBySignoffTokenFn not called")
	}

	// Default (nil func) → context.Canceled
	m = &Repo{}
	got, err = m.GetBySignoffToken(ctx, "tok")
	if err != context.Canceled {
		t.Fatalf("GetBySignoffToken default: want context.Canceled, got %v", err)
	}
	if got != nil {
		t.Fatalf("GetBySignoffToken default: want nil, got %+v", got)
	}
}

func TestRepo_GetBySignoffTokenForUpdate(t *testing.T) {
	ctx := context.Background()
	want := &domain.Testimonial{ID: "T-2"}

	m := &Repo{
		GetBySignoffTokenForUpdateFn: func(context.Context, string) (*domain.Testimonial, error) {
			return want, nil
		},
	}
	if got, err := m.GetBySignoffTokenForUpdate(ctx, "tok"); err != nil || got != want {
		t.Fatalf("GetBySignoffTokenForUpdate: got %+v, %v", got, err)
	}

	m = &Repo{}
	if _, err := m.GetBySignoffTokenForUpdate(ctx, "tok"); err != context.Canceled {
		t.Fatalf("GetBySignoffTokenForUpdate default: want context.Canceled, got %v", err)
	}
}

func TestRepo_ApplySignoff(t *testing.T) {
	ctx := context.Background()
	upd := domain.SignoffUpdate{Status: domain.StatusApproved, UsedAt: time.Now()}

	wantErr := errors.New("boom")
	m := &Repo{
		ApplySignoffFn: func(_ context.Context, id string, u domain.SignoffUpdate) error {
			if id != "T-3" || u.Status != domain.StatusApproved {
				t.Fatalf("args mismatch: %s %+v", id, u)
			}
			return wantErr
		},
	}
	if err := m.ApplySignoff(ctx, "T-3", upd); !errors.Is(err, wantErr) {
		t.Fatalf("ApplySignoff: want %v, got %v", wantErr, err)
	}

	// Default (nil func) → no-op, nil error
	m = &Repo{}
	if err := m.ApplySignoff(ctx, "T-3", upd); err != nil {
		t.Fatalf("ApplySignoff default: want nil, got %v", err)
	}
}
