package models

import (
	"github.com/google/uuid"

	databasetypes "github.com/zestdev/zest/database/types"
)

// AppRun is the audit record of a single run invocation, scheduled or
// interactive.
type AppRun struct {
	Model
	AppID uuid.UUID `json:"appId" gorm:"not null;type:uuid;index;"`
	App   App       `json:"-" gorm:"foreignKey:AppID;references:ID;constraint:OnDelete:CASCADE;"`

	// RunID is supplied by the caller and echoed to the execution tier in the
	// run-id header.
	RunID      uuid.UUID  `json:"runId" gorm:"type:uuid;not null;uniqueIndex;"`
	ScheduleID *uuid.UUID `json:"scheduleId" gorm:"type:uuid;"`

	// Version is the short version string the run resolved to; DeploymentID
	// is the fully qualified slug@version identifier.
	Version      string `json:"version" gorm:"type:text;not null;"`
	DeploymentID string `json:"deploymentId" gorm:"type:text;not null;"`
	Path         string `json:"path" gorm:"type:text;not null;"`

	Inputs  databasetypes.JSONB `json:"inputs" gorm:"type:jsonb"`
	Success bool                `json:"success" gorm:"not null;"`
	Result  string              `json:"result" gorm:"type:text;"`
}

func (m AppRun) TableName() string {
	return "app_runs"
}
