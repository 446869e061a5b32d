package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConversationAnalysis struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Sentiment      string         `gorm:"type:varchar(20)"`
	Topics         datatypes.JSON `gorm:"type:jsonb"`
	ActionItems    datatypes.JSON `gorm:"type:jsonb"`
	KeyPoints      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (ConversationAnalysis) TableName() string {
	return "conversation_analyses"
}
