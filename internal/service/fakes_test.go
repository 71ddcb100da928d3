package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"ai-notes-be/internal/entity"
	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/repository/contract"
	"ai-notes-be/internal/repository/specification"
	"ai-notes-be/internal/repository/unitofwork"
	"ai-notes-be/pkg/events"
)

// memStore backs the fake repositories and evaluates the specification types the services use.
type memStore struct {
	mu       sync.Mutex
	users    map[string]*entity.User
	notes    []*entity.Note
	deleted  map[string]bool
	noteOps  int
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[string]*entity.User),
		deleted: make(map[string]bool),
	}
}

type fakeFactory struct{ store *memStore }

func (f fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *memStore
	began bool
}

func (u *fakeUow) Begin(ctx context.Context) error { u.began = true; return nil }
func (u *fakeUow) Commit() error                   { u.began = false; return nil }
func (u *fakeUow) Rollback() error                 { u.began = false; return nil }

func (u *fakeUow) UserRepository() contract.UserRepository { return fakeUserRepo{u.store} }
func (u *fakeUow) NoteRepository() contract.NoteRepository { return fakeNoteRepo{u.store} }

type fakeUserRepo struct{ s *memStore }

func (r fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.Email]; ok {
		return apperror.ErrEmailTaken
	}
	cp := *user
	r.s.users[user.Email] = &cp
	return nil
}

func (r fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, spec := range specs {
		if byEmail, ok := spec.(specification.ByEmail); ok {
			if u, ok := r.s.users[strings.ToLower(byEmail.Email)]; ok {
				cp := *u
				return &cp, nil
			}
		}
	}
	return nil, nil
}

type fakeNoteRepo struct{ s *memStore }

func matches(n *entity.Note, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.ByID:
			if n.Id != v.ID {
				return false
			}
		case specification.NoteOwnedByUser:
			if n.UserId != v.UserID {
				return false
			}
		case specification.ByTag:
			found := false
			for _, t := range n.Tags {
				if t == v.Tag {
					found = true
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func (r fakeNoteRepo) live() []*entity.Note {
	res := make([]*entity.Note, 0, len(r.s.notes))
	for _, n := range r.s.notes {
		if !r.s.deleted[n.Id.String()] {
			res = append(res, n)
		}
	}
	return res
}

func (r fakeNoteRepo) Create(ctx context.Context, note *entity.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.noteOps++
	if r.s.failWith != nil {
		return r.s.failWith
	}
	cp := *note
	cp.Tags = append([]string(nil), note.Tags...)
	r.s.notes = append(r.s.notes, &cp)
	return nil
}

func (r fakeNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r fakeNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.noteOps++
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}

	var res []*entity.Note
	for _, n := range r.live() {
		if matches(n, specs) {
			cp := *n
			res = append(res, &cp)
		}
	}

	for _, spec := range specs {
		switch v := spec.(type) {
		case specification.OrderBy:
			sort.SliceStable(res, func(i, j int) bool {
				if v.Desc {
					return res[i].CreatedAt.After(res[j].CreatedAt)
				}
				return res[i].CreatedAt.Before(res[j].CreatedAt)
			})
		case specification.Pagination:
			if v.Offset >= len(res) {
				res = nil
				continue
			}
			res = res[v.Offset:]
			if v.Limit >= 0 && v.Limit < len(res) {
				res = res[:v.Limit]
			}
		}
	}
	return res, nil
}

func (r fakeNoteRepo) Update(ctx context.Context, changes entity.NoteChanges, specs ...specification.Specification) (*entity.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.noteOps++
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	for _, n := range r.live() {
		if !matches(n, specs) {
			continue
		}
		if changes.Title != nil {
			n.Title = *changes.Title
		}
		if changes.Content != nil {
			n.Content = *changes.Content
		}
		if changes.Tags != nil {
			n.Tags = append([]string(nil), (*changes.Tags)...)
		}
		if changes.Summary != nil {
			s := *changes.Summary
			n.Summary = &s
		}
		now := time.Now()
		n.UpdatedAt = &now
		cp := *n
		return &cp, nil
	}
	return nil, nil
}

func (r fakeNoteRepo) Delete(ctx context.Context, specs ...specification.Specification) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.noteOps++
	if r.s.failWith != nil {
		return false, r.s.failWith
	}
	for _, n := range r.live() {
		if matches(n, specs) {
			r.s.deleted[n.Id.String()] = true
			return true, nil
		}
	}
	return false, nil
}

func (r fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	res := make([]string, 0, len(p.events))
	for _, e := range p.events {
		res = append(res, e.EventType())
	}
	return res
}

type stubSummarizer struct {
	out    string
	err    error
	calls  int
	inputs []string
}

func (s *stubSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	s.calls++
	s.inputs = append(s.inputs, text)
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}
