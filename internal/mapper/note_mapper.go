package mapper

import (
	"time"

	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/model"

	"gorm.io/datatypes"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	tags := make([]string, len(n.Tags))
	copy(tags, n.Tags)

	return &entity.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tags,
		Summary:   n.Summary,
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.Note{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      toJSONSlice(n.Tags),
		Summary:   n.Summary,
		CreatedAt: n.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

// ToColumns converts a change set into the column map handed to gorm Updates.
func (m *NoteMapper) ToColumns(c entity.NoteChanges) map[string]interface{} {
	cols := make(map[string]interface{})
	if c.Title != nil {
		cols["title"] = *c.Title
	}
	if c.Content != nil {
		cols["content"] = *c.Content
	}
	if c.Tags != nil {
		cols["tags"] = toJSONSlice(*c.Tags)
	}
	if c.Summary != nil {
		cols["summary"] = *c.Summary
	}
	return cols
}

// toJSONSlice never yields nil so the jsonb column stores [] rather than null.
func toJSONSlice(tags []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], len(tags))
	copy(out, tags)
	return out
}
