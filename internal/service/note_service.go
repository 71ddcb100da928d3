// FILE: internal/service/note_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/pkg/logger"
	"ai-notes-be/internal/repository/specification"
	"ai-notes-be/internal/repository/unitofwork"
	"ai-notes-be/pkg/events"
	"ai-notes-be/pkg/summarizer"

	"github.com/google/uuid"
)

const (
	SummaryFallbackText    = "AI is currently busy, try again later"
	summarySuccessMessage  = "Note summarized successfully"
	summaryFallbackMessage = "AI summarization unavailable"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID, query dto.ListNotesQuery) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Summarize(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SummarizeNoteResponse, error)
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	summarizer summarizer.Summarizer
	publisher  IPublisherService
	log        logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	summarizer summarizer.Summarizer,
	publisher IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		summarizer: summarizer,
		publisher:  publisher,
		log:        log,
	}
}

// owned pairs an id filter with the owner filter so the store sees both in one statement.
func owned(userId, id uuid.UUID) []specification.Specification {
	return []specification.Specification{
		specification.ByID{ID: id},
		specification.NoteOwnedByUser{UserID: userId},
	}
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	title, content, err := cleanNoteFields(req.Title, req.Content)
	if err != nil {
		return nil, err
	}

	note := entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		Content:   content,
		Tags:      cleanTags(req.Tags),
		CreatedAt: time.Now(),
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	c.publishNoteEvent(ctx, events.TypeNoteCreated, &note)

	return toNoteResponse(&note), nil
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID, query dto.ListNotesQuery) ([]*dto.NoteResponse, error) {
	specs := []specification.Specification{
		specification.NoteOwnedByUser{UserID: userId},
	}
	if tag := strings.TrimSpace(query.Tag); tag != "" {
		specs = append(specs, specification.ByTag{Tag: tag})
	}
	specs = append(specs, specification.NewestFirst())
	if query.Limit > 0 || query.Offset > 0 {
		limit := query.Limit
		if limit == 0 {
			limit = -1 // gorm: no limit
		}
		specs = append(specs, specification.Pagination{Limit: limit, Offset: query.Offset})
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		res = append(res, toNoteResponse(note))
	}
	return res, nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, owned(userId, id)...)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("note %w", apperror.ErrNotFound)
	}
	return toNoteResponse(note), nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	title, content, err := cleanNoteFields(req.Title, req.Content)
	if err != nil {
		return nil, err
	}
	tags := cleanTags(req.Tags)

	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().Update(ctx, entity.NoteChanges{
		Title:   &title,
		Content: &content,
		Tags:    &tags,
	}, owned(userId, req.Id)...)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("note %w", apperror.ErrNotFound)
	}

	c.publishNoteEvent(ctx, events.TypeNoteUpdated, note)

	return toNoteResponse(note), nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.NoteRepository().Delete(ctx, owned(userId, id)...)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("note %w", apperror.ErrNotFound)
	}

	publish(ctx, c.publisher, c.log, events.New(events.TypeNoteDeleted, map[string]interface{}{
		"note_id": id.String(),
		"user_id": userId.String(),
	}))

	return nil
}

// Summarize stores a fresh summary on the note. When the summarizer is unavailable the
// note is left untouched and a placeholder is returned instead of an error.
func (c *noteService) Summarize(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SummarizeNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, owned(userId, id)...)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("note %w", apperror.ErrNotFound)
	}

	summary, err := c.summarizer.Summarize(ctx, note.Content)
	if err != nil {
		if !errors.Is(err, summarizer.ErrUnavailable) {
			return nil, err
		}
		c.log.Warn("NoteService", "Summarization unavailable, returning fallback", map[string]interface{}{
			"note_id": id.String(),
			"error":   err,
		})
		return &dto.SummarizeNoteResponse{
			Message: summaryFallbackMessage,
			Summary: SummaryFallbackText,
		}, nil
	}

	updated, err := uow.NoteRepository().Update(ctx, entity.NoteChanges{Summary: &summary}, owned(userId, id)...)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// removed while the summarizer was running
		return nil, fmt.Errorf("note %w", apperror.ErrNotFound)
	}

	c.publishNoteEvent(ctx, events.TypeNoteSummarized, updated)

	return &dto.SummarizeNoteResponse{
		Message: summarySuccessMessage,
		Summary: summary,
	}, nil
}

func (c *noteService) publishNoteEvent(ctx context.Context, eventType string, note *entity.Note) {
	publish(ctx, c.publisher, c.log, events.New(eventType, map[string]interface{}{
		"note_id": note.Id.String(),
		"user_id": note.UserId.String(),
		"title":   note.Title,
	}))
}

func cleanNoteFields(title, content string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", fmt.Errorf("%w: title is required", apperror.ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return "", "", fmt.Errorf("%w: content is required", apperror.ErrValidation)
	}
	return title, content, nil
}

// cleanTags trims each tag and drops blanks and repeats, keeping the first-seen order.
func cleanTags(tags []string) []string {
	res := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		res = append(res, tag)
	}
	return res
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.NoteResponse{
		Id:        note.Id,
		UserId:    note.UserId,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      tags,
		Summary:   note.Summary,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
