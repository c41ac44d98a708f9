package signoff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"seatime-backend/internal/domain/testimonial"
	"seatime-backend/internal/domain/uow"

	"github.com/sirupsen/logrus"
)

var errNoUnitOfWork = errors.New("unit of work not configured")

type Usecase struct {
	repo testimonial.Repository
	uow  uow.UnitOfWork
	log  logrus.FieldLogger
	now  clock
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		if now != nil {
			u.now = now
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(u *Usecase) {
		if l != nil {
			u.log = l
		}
	}
}

// NewUsecase: repo serves the read-only validate path, tx the consume path.
func NewUsecase(repo testimonial.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		repo: repo,
		uow:  tx,
		log:  logrus.StandardLogger(),
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Validate confirms the token is live for email and returns the redacted testimonial.
// Read-only.
func (u *Usecase) Validate(ctx context.Context, in ValidateInput) (*ValidateResult, error) {
	token := strings.TrimSpace(in.Token)
	email := strings.TrimSpace(in.Email)
	if token == "" || email == "" {
		return nil, u.fail("validate", "input", "", invalid("token and email are required"))
	}

	t, err := u.repo.GetBySignoffToken(ctx, token)
	if err != nil {
		if errors.Is(err, testimonial.ErrNotFound) {
			return nil, u.fail("validate", "lookup", "", notFound(err))
		}
		return nil, u.fail("validate", "lookup", "", internal("failed to load testimonial", err))
	}

	if pre, e := checkSignoff(t, email, u.now()); e != nil {
		return nil, u.fail("validate", pre, t.ID, e)
	}

	return &ValidateResult{
		Testimonial:  toView(t),
		CaptainEmail: t.SignoffTargetEmail,
	}, nil
}

// Consume performs the single approve/reject transition permitted for a token.
func (u *Usecase) Consume(ctx context.Context, in ConsumeInput) (*ConsumeResult, error) {
	token := strings.TrimSpace(in.Token)
	email := strings.TrimSpace(in.Email)
	if token == "" || email == "" || in.Action == "" {
		return nil, u.fail("consume", "input", "", invalid("token, email and action are required"))
	}
	switch in.Action {
	case ActionApprove, ActionReject:
	default:
		return nil, u.fail("consume", "input", "", invalid("action must be 'approve' or 'reject'"))
	}
	if in.Action == ActionReject && strings.TrimSpace(in.RejectionReason) == "" {
		return nil, u.fail("consume", "input", "", invalid("rejectionReason is required when rejecting"))
	}
	if u.uow == nil {
		return nil, u.fail("consume", "store", "", internal("sign-off store unavailable", errNoUnitOfWork))
	}

	var (
		out          *ConsumeResult
		id           string
		precondition = "lookup"
	)
	err := u.uow.WithinSignoffTx(ctx, token, func(r uow.Repos, t *testimonial.Testimonial) error {
		id = t.ID
		now := u.now()
		if pre, e := checkSignoff(t, email, now); e != nil {
			precondition = pre
			return e
		}

		upd := testimonial.SignoffUpdate{Status: testimonial.StatusApproved, UsedAt: now}
		if in.Action == ActionReject {
			reason := in.RejectionReason
			notes := appendRejection(t.Notes, reason)
			upd.Status = testimonial.StatusRejected
			upd.Notes = &notes
			upd.RejectionReason = &reason
		}

		if err := r.Testimonials.ApplySignoff(ctx, t.ID, upd); err != nil {
			if errors.Is(err, testimonial.ErrAlreadyConsumed) {
				// lost the race to a concurrent consumer; report the status it left behind
				precondition = "used"
				msg := "token already used"
				if cur, rerr := r.Testimonials.GetBySignoffToken(ctx, token); rerr == nil {
					msg = usedMessage(cur.Status)
				}
				return &Error{Kind: ErrForbidden, Message: msg, Err: err}
			}
			precondition = "write"
			return internal("failed to update testimonial", err)
		}
		out = &ConsumeResult{ID: t.ID, Status: string(upd.Status)}
		return nil
	})
	if err != nil {
		var se *Error
		switch {
		case errors.As(err, &se):
			return nil, u.fail("consume", precondition, id, se)
		case errors.Is(err, testimonial.ErrNotFound):
			return nil, u.fail("consume", "lookup", "", notFound(err))
		default:
			// lookup or commit failure
			return nil, u.fail("consume", precondition, id, internal("failed to complete sign-off", err))
		}
	}
	return out, nil
}

// checkSignoff runs the liveness checks in their fixed order: email, expiry, used, status.
// It returns the failing precondition name for logs.
func checkSignoff(t *testimonial.Testimonial, email string, now time.Time) (string, *Error) {
	if !strings.EqualFold(strings.TrimSpace(t.SignoffTargetEmail), email) {
		return "email", forbidden("email does not match this sign-off request")
	}
	// expires_at itself is still valid
	if t.SignoffTokenExpiresAt != nil && now.After(*t.SignoffTokenExpiresAt) {
		return "expiry", forbidden("token has expired")
	}
	if t.SignoffUsedAt != nil {
		return "used", forbidden(usedMessage(t.Status))
	}
	if t.Status.Terminal() {
		return "status", forbidden(fmt.Sprintf("testimonial has already been %s", t.Status))
	}
	if t.Status != testimonial.StatusPending {
		return "status", forbidden(fmt.Sprintf("testimonial is not pending (status: %s)", t.Status))
	}
	return "", nil
}

func usedMessage(s testimonial.Status) string {
	return fmt.Sprintf("token already used (status: %s)", s)
}

func appendRejection(notes, reason string) string {
	line := "Rejection reason: " + reason
	if notes == "" {
		return line
	}
	return notes + "\n\n" + line
}

func toView(t *testimonial.Testimonial) TestimonialView {
	v := TestimonialView{
		ID:               t.ID,
		StartDate:        t.StartDate,
		EndDate:          t.EndDate,
		TotalDays:        t.TotalDays,
		AtSeaDays:        t.AtSeaDays,
		StandbyDays:      t.StandbyDays,
		YardDays:         t.YardDays,
		WatchkeepingDays: t.WatchkeepingDays,
		Status:           string(t.Status),
	}
	if t.Vessel != nil {
		v.Vessel = &VesselView{ID: t.Vessel.ID, Name: t.Vessel.Name, Type: t.Vessel.VesselType}
	}
	return v
}

func (u *Usecase) fail(op, precondition, testimonialID string, e *Error) *Error {
	entry := u.log.WithFields(logrus.Fields{
		"op":           op,
		"precondition": precondition,
		"kind":         e.Kind.Error(),
	})
	if testimonialID != "" {
		entry = entry.WithField("testimonial_id", testimonialID)
	}
	if e.Err != nil {
		entry = entry.WithError(e.Err)
	}
	if errors.Is(e, ErrInternal) {
		entry.Error(e.Message)
	} else {
		entry.Warn(e.Message)
	}
	return e
}
