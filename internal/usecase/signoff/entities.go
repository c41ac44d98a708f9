package signoff

import (
	"time"

	"gorm.io/datatypes"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

type ValidateInput struct {
	Token string
	Email string
}

type ConsumeInput struct {
	Token           string
	Email           string
	Action          Action
	RejectionReason string
}

type VesselView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// TestimonialView is what an unauthenticated token holder may see.
type TestimonialView struct {
	ID               string         `json:"id"`
	StartDate        datatypes.Date `json:"start_date"`
	EndDate          datatypes.Date `json:"end_date"`
	TotalDays        int            `json:"total_days"`
	AtSeaDays        int            `json:"at_sea_days"`
	StandbyDays      int            `json:"standby_days"`
	YardDays         int            `json:"yard_days"`
	WatchkeepingDays int            `json:"watchkeeping_days"`
	Status           string         `json:"status"`
	Vessel           *VesselView    `json:"vessel"`
}

type ValidateResult struct {
	Testimonial  TestimonialView
	CaptainEmail string
}

type ConsumeResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type clock func() time.Time
