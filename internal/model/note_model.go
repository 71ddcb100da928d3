package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Note struct {
	Id        uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID                   `gorm:"type:uuid;not null;index:idx_notes_user_created,priority:1"`
	Title     string                      `gorm:"type:varchar(255);not null"`
	Content   string                      `gorm:"type:text;not null"`
	Tags      datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	Summary   *string                     `gorm:"type:text"`
	CreatedAt time.Time                   `gorm:"autoCreateTime;index:idx_notes_user_created,priority:2,sort:desc"`
	UpdatedAt time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt              `gorm:"index"`
}

func (Note) TableName() string {
	return "notes"
}
