package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required,max=255"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags" validate:"omitempty,max=32,dive,max=64"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID `json:"-"`
	Title   string    `json:"title" validate:"required,max=255"`
	Content string    `json:"content" validate:"required"`
	Tags    []string  `json:"tags" validate:"omitempty,max=32,dive,max=64"`
}

type NoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	UserId    uuid.UUID  `json:"userId"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	Summary   *string    `json:"summary,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type SummarizeNoteResponse struct {
	Message string `json:"message"`
	Summary string `json:"summary"`
}

// ListNotesQuery is bound from the query string; zero values mean "no filter".
type ListNotesQuery struct {
	Tag    string `query:"tag" validate:"omitempty,max=64"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}
