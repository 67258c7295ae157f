package models

import (
	"github.com/google/uuid"
)

const (
	DefaultBranchName = "main"
	// MainFilename is the canonical entry file of every app.
	MainFilename = "main.ts"
)

// Script is a single named source file of an App. Its hash is recomputed on
// every mutation and only depends on (id, filename, code).
type Script struct {
	Model
	AppID      uuid.UUID `json:"appId" gorm:"uniqueIndex:idx_script_app_branch_filename;not null;type:uuid;"`
	App        App       `json:"-" gorm:"foreignKey:AppID;references:ID;constraint:OnDelete:CASCADE;"`
	BranchName string    `json:"branchName" gorm:"uniqueIndex:idx_script_app_branch_filename;type:text;not null;default:'main';"`
	Filename   string    `json:"filename" gorm:"uniqueIndex:idx_script_app_branch_filename;type:text;not null;"`

	Code string `json:"code" gorm:"type:text;not null;"`
	Hash string `json:"hash" gorm:"type:text;"`

	// IsRunnable marks scripts that export an invocable handler.
	IsRunnable bool `json:"isRunnable" gorm:"default:true;not null;"`
	// ConnectorID tags scripts generated by a connector installation; those
	// scripts are removed again when the connector is uninstalled.
	ConnectorID *string `json:"connectorId" gorm:"type:text;"`
}

func (m Script) TableName() string {
	return "scripts"
}
