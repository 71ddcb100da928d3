package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Content   string
	Tags      []string
	Summary   *string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// NoteChanges lists the columns an owner-scoped update may touch. Nil fields are left alone.
type NoteChanges struct {
	Title   *string
	Content *string
	Tags    *[]string
	Summary *string
}

func (c NoteChanges) IsEmpty() bool {
	return c.Title == nil && c.Content == nil && c.Tags == nil && c.Summary == nil
}
