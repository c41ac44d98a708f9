package vessel

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Table: vessels. Read-only for the sign-off flow; joined for display.
type Vessel struct {
	ID         string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Name       string    `gorm:"column:name;size:255;not null" json:"name"`
	VesselType string    `gorm:"column:vessel_type;size:64" json:"type"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Vessel) TableName() string { return "vessels" }

func (v *Vessel) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
