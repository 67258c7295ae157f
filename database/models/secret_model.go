package models

import (
	"github.com/google/uuid"
)

// Secret is a per-app key/value pair. The value is encrypted before it ever
// reaches this struct; the plaintext only exists in memory at the API
// boundary. The app's secretsHash is computed over the ciphertext, so a
// rotation changes the hash without the hash domain ever seeing plaintext.
type Secret struct {
	Model
	AppID uuid.UUID `json:"appId" gorm:"uniqueIndex:idx_secret_app_key;not null;type:uuid;"`
	App   App       `json:"-" gorm:"foreignKey:AppID;references:ID;constraint:OnDelete:CASCADE;"`

	Key            string `json:"key" gorm:"uniqueIndex:idx_secret_app_key;type:text;not null;"`
	EncryptedValue string `json:"-" gorm:"type:text;not null;"`
}

func (m Secret) TableName() string {
	return "secrets"
}
