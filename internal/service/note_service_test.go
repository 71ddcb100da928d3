package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/pkg/logger"
	"ai-notes-be/pkg/events"
	"ai-notes-be/pkg/summarizer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteFixture struct {
	store     *memStore
	sum       *stubSummarizer
	publisher *recordingPublisher
	svc       INoteService
}

func newNoteFixture() *noteFixture {
	f := &noteFixture{
		store:     newMemStore(),
		sum:       &stubSummarizer{out: "A short summary."},
		publisher: &recordingPublisher{},
	}
	f.svc = NewNoteService(fakeFactory{f.store}, f.sum, f.publisher, logger.NewNopLogger())
	return f
}

// seed inserts a note with an explicit creation time so ordering is deterministic.
func (f *noteFixture) seed(owner uuid.UUID, title string, createdAt time.Time, tags ...string) *entity.Note {
	n := &entity.Note{
		Id:        uuid.New(),
		UserId:    owner,
		Title:     title,
		Content:   title + " content",
		Tags:      tags,
		CreatedAt: createdAt,
	}
	f.store.notes = append(f.store.notes, n)
	return n
}

func TestNoteService_Create(t *testing.T) {
	f := newNoteFixture()
	owner := uuid.New()

	res, err := f.svc.Create(context.Background(), owner, &dto.CreateNoteRequest{
		Title:   "  Groceries ",
		Content: "milk, eggs",
		Tags:    []string{"home", " home", "", "errands"},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.Id)
	assert.Equal(t, owner, res.UserId)
	assert.Equal(t, "Groceries", res.Title)
	assert.Equal(t, []string{"home", "errands"}, res.Tags)
	assert.Nil(t, res.Summary)
	assert.False(t, res.CreatedAt.IsZero())

	require.Len(t, f.store.notes, 1)
	assert.Equal(t, owner, f.store.notes[0].UserId)
	assert.Equal(t, []string{events.TypeNoteCreated}, f.publisher.types())
}

func TestNoteService_Create_ValidationPersistsNothing(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
	}{
		{name: "empty title", title: "", content: "body"},
		{name: "blank title", title: "   ", content: "body"},
		{name: "empty content", title: "title", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newNoteFixture()
			_, err := f.svc.Create(context.Background(), uuid.New(), &dto.CreateNoteRequest{Title: tt.title, Content: tt.content})
			assert.ErrorIs(t, err, apperror.ErrValidation)
			assert.Empty(t, f.store.notes)
			assert.Zero(t, f.store.noteOps)
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestNoteService_Create_PublishFailureDoesNotFail(t *testing.T) {
	f := newNoteFixture()
	f.publisher.err = errors.New("bus closed")

	_, err := f.svc.Create(context.Background(), uuid.New(), &dto.CreateNoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.Len(t, f.store.notes, 1)
}

func TestNoteService_List_OwnerScopedNewestFirst(t *testing.T) {
	f := newNoteFixture()
	alice, bob := uuid.New(), uuid.New()
	base := time.Now().Add(-time.Hour)

	f.seed(alice, "first", base)
	f.seed(bob, "bob's", base.Add(time.Minute))
	f.seed(alice, "third", base.Add(2*time.Minute))
	f.seed(alice, "second", base.Add(time.Minute))

	notes, err := f.svc.List(context.Background(), alice, dto.ListNotesQuery{})
	require.NoError(t, err)

	titles := make([]string, 0, len(notes))
	for _, n := range notes {
		assert.Equal(t, alice, n.UserId)
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"third", "second", "first"}, titles)

	empty, err := f.svc.List(context.Background(), uuid.New(), dto.ListNotesQuery{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestNoteService_List_TagAndPaging(t *testing.T) {
	f := newNoteFixture()
	owner := uuid.New()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		tag := "odd"
		if i%2 == 0 {
			tag = "even"
		}
		f.seed(owner, fmt.Sprintf("n%d", i), base.Add(time.Duration(i)*time.Minute), tag)
	}

	tagged, err := f.svc.List(context.Background(), owner, dto.ListNotesQuery{Tag: "even"})
	require.NoError(t, err)
	require.Len(t, tagged, 3)
	assert.Equal(t, "n4", tagged[0].Title)

	page, err := f.svc.List(context.Background(), owner, dto.ListNotesQuery{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "n3", page[0].Title)
	assert.Equal(t, "n2", page[1].Title)

	rest, err := f.svc.List(context.Background(), owner, dto.ListNotesQuery{Offset: 3})
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "n1", rest[0].Title)
}

func TestNoteService_ShowAndUpdate_OtherOwnerIsNotFound(t *testing.T) {
	f := newNoteFixture()
	alice, bob := uuid.New(), uuid.New()
	note := f.seed(alice, "private", time.Now())

	_, err := f.svc.Show(context.Background(), bob, note.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.Update(context.Background(), bob, &dto.UpdateNoteRequest{Id: note.Id, Title: "hacked", Content: "x"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "private", f.store.notes[0].Title)

	res, err := f.svc.Update(context.Background(), alice, &dto.UpdateNoteRequest{Id: note.Id, Title: "renamed", Content: "new", Tags: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, "renamed", res.Title)
	assert.Equal(t, []string{"a"}, res.Tags)
	assert.NotNil(t, res.UpdatedAt)

	shown, err := f.svc.Show(context.Background(), alice, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "renamed", shown.Title)
	assert.Equal(t, []string{events.TypeNoteUpdated}, f.publisher.types())
}

func TestNoteService_Delete(t *testing.T) {
	f := newNoteFixture()
	alice, bob := uuid.New(), uuid.New()
	note := f.seed(alice, "doomed", time.Now())

	err := f.svc.Delete(context.Background(), bob, note.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, f.svc.Delete(context.Background(), alice, note.Id))

	err = f.svc.Delete(context.Background(), alice, note.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	notes, err := f.svc.List(context.Background(), alice, dto.ListNotesQuery{})
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Equal(t, []string{events.TypeNoteDeleted}, f.publisher.types())
}

func TestNoteService_Summarize_PersistsSummary(t *testing.T) {
	f := newNoteFixture()
	owner := uuid.New()
	note := f.seed(owner, "Hello", time.Now())

	res, err := f.svc.Summarize(context.Background(), owner, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", res.Summary)
	assert.Equal(t, summarySuccessMessage, res.Message)
	assert.Equal(t, []string{note.Content}, f.sum.inputs)

	notes, err := f.svc.List(context.Background(), owner, dto.ListNotesQuery{})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.NotNil(t, notes[0].Summary)
	assert.Equal(t, "A short summary.", *notes[0].Summary)
	assert.Equal(t, []string{events.TypeNoteSummarized}, f.publisher.types())
}

func TestNoteService_Summarize_FallbackLeavesNoteUntouched(t *testing.T) {
	f := newNoteFixture()
	f.sum.err = fmt.Errorf("%w: request failed: connection refused", summarizer.ErrUnavailable)
	owner := uuid.New()
	note := f.seed(owner, "Hello", time.Now())
	note.Content = "Hello world"

	res, err := f.svc.Summarize(context.Background(), owner, note.Id)
	require.NoError(t, err)
	assert.Equal(t, SummaryFallbackText, res.Summary)
	assert.Equal(t, summaryFallbackMessage, res.Message)

	assert.Nil(t, f.store.notes[0].Summary)
	assert.Nil(t, f.store.notes[0].UpdatedAt)
	assert.Empty(t, f.publisher.events)
}

func TestNoteService_Summarize_NotFoundSkipsSummarizer(t *testing.T) {
	f := newNoteFixture()
	alice := uuid.New()
	note := f.seed(alice, "mine", time.Now())

	_, err := f.svc.Summarize(context.Background(), uuid.New(), note.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Zero(t, f.sum.calls)

	_, err = f.svc.Summarize(context.Background(), alice, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestNoteService_Summarize_OtherErrorsPropagate(t *testing.T) {
	f := newNoteFixture()
	owner := uuid.New()
	note := f.seed(owner, "Hello", time.Now())
	f.sum.err = context.Canceled

	_, err := f.svc.Summarize(context.Background(), owner, note.Id)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNoteService_StoreErrorsPropagate(t *testing.T) {
	f := newNoteFixture()
	f.store.failWith = errors.New("connection reset")

	_, err := f.svc.List(context.Background(), uuid.New(), dto.ListNotesQuery{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperror.ErrNotFound)
}
