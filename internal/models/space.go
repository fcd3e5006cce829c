package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Space struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title        string          `gorm:"type:text;not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	Requirements json.RawMessage `gorm:"type:jsonb;serializer:json" json:"requirements"`
	CreatedAt    time.Time       `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"type:timestamp;default:now()" json:"updated_at"`

	Proposals []Proposal `gorm:"foreignKey:SpaceID" json:"-"`
}

func (Space) TableName() string {
	return "spaces"
}
