package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteOwnedByUser must accompany every note query; it is what keeps one user's
// notes invisible to another.
type NoteOwnedByUser struct {
	UserID uuid.UUID
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ?", s.UserID)
}

// NewestFirst orders notes by creation time, latest first.
func NewestFirst() Specification {
	return OrderBy{Field: "notes.created_at", Desc: true}
}

// ByTag keeps notes whose tag array contains the given tag.
type ByTag struct {
	Tag string
}

func (s ByTag) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.tags @> ?::jsonb", `["`+jsonEscape(s.Tag)+`"]`)
}
