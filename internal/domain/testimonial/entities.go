package testimonial

import (
	"errors"
	"time"

	"seatime-backend/internal/domain/vessel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("testimonial not found")
	// ErrAlreadyConsumed is returned when the conditional sign-off write matched no row:
	// another request used the token between read and write.
	ErrAlreadyConsumed = errors.New("testimonial sign-off already consumed")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

// Table: testimonials
type Testimonial struct {
	ID       string `gorm:"column:id;type:char(36);primaryKey"`
	UserID   string `gorm:"column:user_id;type:char(36);index"`
	VesselID string `gorm:"column:vessel_id;type:char(36);index"`

	StartDate        datatypes.Date `gorm:"column:start_date"`
	EndDate          datatypes.Date `gorm:"column:end_date"`
	TotalDays        int            `gorm:"column:total_days;not null;default:0"`
	AtSeaDays        int            `gorm:"column:at_sea_days;not null;default:0"`
	StandbyDays      int            `gorm:"column:standby_days;not null;default:0"`
	YardDays         int            `gorm:"column:yard_days;not null;default:0"`
	WatchkeepingDays int            `gorm:"column:watchkeeping_days;not null;default:0"`

	Status Status `gorm:"column:status;type:varchar(16);not null;default:'pending';index"`

	SignoffToken          string     `gorm:"column:signoff_token;size:128;uniqueIndex"`
	SignoffTargetEmail    string     `gorm:"column:signoff_target_email;size:320"`
	SignoffTokenExpiresAt *time.Time `gorm:"column:signoff_token_expires_at"`
	SignoffUsedAt         *time.Time `gorm:"column:signoff_used_at"`

	Notes           string  `gorm:"column:notes;type:text"`
	RejectionReason *string `gorm:"column:rejection_reason;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Vessel *vessel.Vessel `gorm:"foreignKey:VesselID;references:ID"`
}

func (Testimonial) TableName() string { return "testimonials" }

func (t *Testimonial) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// SignoffUpdate is the single terminal write of a sign-off.
// Notes and RejectionReason are nil on approve and left untouched.
type SignoffUpdate struct {
	Status          Status
	UsedAt          time.Time
	Notes           *string
	RejectionReason *string
}
