package models

import (
	"github.com/google/uuid"
)

// App is the top-level deployable unit. Hash is always recomputable as a pure
// function of (id, name, script hashes) and is never hand-edited; the three
// version pointers are independent of each other: LastDeploymentVersion is
// the most recently built version string, PlaygroundVersionHash the full hash
// currently loaded in the editor and PublishedVersionHash the publicly live
// one.
type App struct {
	Model
	Name        string `json:"name" gorm:"type:text;not null;"`
	Slug        string `json:"slug" gorm:"type:text;uniqueIndex;not null;"`
	Description string `json:"description" gorm:"type:text"`
	IsPrivate   bool   `json:"isPrivate" gorm:"default:false;not null;"`

	CreatedByID    uuid.UUID  `json:"createdById" gorm:"type:uuid;not null;"`
	OrganizationID *uuid.UUID `json:"organizationId" gorm:"type:uuid;"`

	Hash                  string `json:"hash" gorm:"type:text;"`
	SecretsHash           string `json:"secretsHash" gorm:"type:text;"`
	LastDeploymentVersion string `json:"lastDeploymentVersion" gorm:"type:text;"`
	PlaygroundVersionHash string `json:"playgroundVersionHash" gorm:"type:text;"`
	PublishedVersionHash  string `json:"publishedVersionHash" gorm:"type:text;"`

	Scripts  []Script  `json:"scripts" gorm:"foreignKey:AppID;references:ID;constraint:OnDelete:CASCADE;"`
	Secrets  []Secret  `json:"-" gorm:"foreignKey:AppID;references:ID;constraint:OnDelete:CASCADE;"`
	Versions []Version `json:"versions" gorm:"foreignKey:AppID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (m App) TableName() string {
	return "apps"
}

func (m *App) GetSlug() string {
	return m.Slug
}

func (m *App) SetSlug(slug string) {
	m.Slug = slug
}
