package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Conversation struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title      string    `gorm:"type:varchar(255)"`
	StartTime  time.Time `gorm:"not null;index"`
	EndTime    *time.Time
	Status     string `gorm:"type:varchar(10);not null;default:'active';index"`
	Summary    string `gorm:"type:text"`
	Metadata   datatypes.JSONMap
	ShareToken *string        `gorm:"type:varchar(64);uniqueIndex"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Conversation) TableName() string {
	return "conversations"
}
