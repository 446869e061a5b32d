package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Message struct {
	Id              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Content         string           `gorm:"type:text;not null"`
	Sender          string           `gorm:"type:varchar(10);not null"`
	Timestamp       time.Time        `gorm:"not null;index"`
	Embedding       *pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text dimensionality
	Reactions       datatypes.JSONMap
	IsBookmarked    bool           `gorm:"default:false"`
	ParentMessageId *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (Message) TableName() string {
	return "messages"
}
