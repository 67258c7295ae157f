package models

import (
	"time"

	"github.com/google/uuid"

	databasetypes "github.com/zestdev/zest/database/types"
)

// Schedule is a cron-triggered run of one script. Input keys are stored with
// their type-annotation suffix (e.g. "count:number"); the queue consumer
// strips the suffix and coerces the value before invoking the execution tier.
type Schedule struct {
	Model
	AppID uuid.UUID `json:"appId" gorm:"not null;type:uuid;index;"`
	App   App       `json:"-" gorm:"foreignKey:AppID;references:ID;constraint:OnDelete:CASCADE;"`

	Filename string `json:"filename" gorm:"type:text;not null;"`
	Crontab  string `json:"crontab" gorm:"type:text;not null;"`

	Inputs     databasetypes.JSONB `json:"inputs" gorm:"type:jsonb"`
	IsDisabled bool                `json:"isDisabled" gorm:"default:false;not null;"`

	CreatedByID uuid.UUID  `json:"createdById" gorm:"type:uuid;not null;"`
	LastRunAt   *time.Time `json:"lastRunAt" gorm:"default:null;"`
}

func (m Schedule) TableName() string {
	return "schedules"
}
