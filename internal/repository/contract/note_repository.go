package contract

import (
	"context"

	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/repository/specification"
)

// NoteRepository callers always pass specification.NoteOwnedByUser alongside
// any id filter, so ownership and the data operation are one statement.
type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	// Update returns nil, nil when nothing matched.
	Update(ctx context.Context, changes entity.NoteChanges, specs ...specification.Specification) (*entity.Note, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, specs ...specification.Specification) (bool, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
