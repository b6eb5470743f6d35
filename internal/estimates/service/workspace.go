// Package service keeps each owner's working set of projects in memory.
//
// Changes are applied locally first and then handed to the synchronizer;
// the remote store never blocks an edit and a failed write is not rolled
// back.
package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
	"github.com/7svn/smeta-backend/internal/estimates/mutate"
	"github.com/7svn/smeta-backend/internal/estimates/store"
	"github.com/7svn/smeta-backend/internal/estimates/syncer"
	"github.com/7svn/smeta-backend/internal/estimates/templates"
	"github.com/7svn/smeta-backend/internal/logger"
)

var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrSuggestionInFlight = errors.New("a suggestion is already being prepared")
)

// Suggester produces a suggestion for a prompt.
type Suggester interface {
	Suggest(ctx context.Context, prompt string) (domain.Suggestion, error)
}

// Syncer receives outbound changes.
type Syncer interface {
	Enqueue(cmd syncer.Command)
	Pending(ownerID string) bool
}

// ListView is an owner's working set as shown to clients.
type ListView struct {
	Projects  []domain.RenovationProject `json:"projects"`
	CurrentID string                     `json:"current_id,omitempty"`
	Syncing   bool                       `json:"syncing"`
}

type workingSet struct {
	mu         sync.Mutex
	loaded     bool
	projects   []domain.RenovationProject
	currentID  string
	suggesting atomic.Bool
}

func (ws *workingSet) index(projectID string) int {
	for i := range ws.projects {
		if ws.projects[i].ID == projectID {
			return i
		}
	}
	return -1
}

func (ws *workingSet) prepend(p domain.RenovationProject) {
	ws.projects = append([]domain.RenovationProject{p}, ws.projects...)
	ws.currentID = p.ID
}

type Workspace struct {
	store     store.Store
	sync      Syncer
	suggester Suggester
	mutator   mutate.Mutator
	factory   templates.Factory

	mu     sync.Mutex
	owners map[string]*workingSet
}

type Option func(*Workspace)

// WithClock replaces the clock and id source of mutations and constructors.
func WithClock(clock domain.Clock, newID func() string) Option {
	return func(w *Workspace) {
		w.mutator = mutate.Mutator{Clock: clock, NewID: newID}
		w.factory = templates.Factory{Clock: clock, NewID: newID}
	}
}

func NewWorkspace(st store.Store, sy Syncer, sg Suggester, opts ...Option) *Workspace {
	w := &Workspace{
		store:     st,
		sync:      sy,
		suggester: sg,
		mutator:   mutate.New(),
		factory:   templates.NewFactory(),
		owners:    make(map[string]*workingSet),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) set(ownerID string) *workingSet {
	w.mu.Lock()
	defer w.mu.Unlock()

	ws, ok := w.owners[ownerID]
	if !ok {
		ws = &workingSet{}
		w.owners[ownerID] = ws
	}
	return ws
}

// acquire returns the owner's locked working set, loading it from the
// store on first use. A failed load is logged and retried next time;
// projects created meanwhile are kept.
func (w *Workspace) acquire(ctx context.Context, ownerID string) (*workingSet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, store.ErrOwnerRequired
	}
	ws := w.set(ownerID)
	ws.mu.Lock()
	if ws.loaded {
		return ws, nil
	}

	remote, err := w.store.List(ctx, ownerID)
	if err != nil {
		logger.New(ctx).LogErrorf("workspace.load", "owner=%s error=%v", ownerID, err)
		return ws, nil
	}
	for _, p := range remote {
		if ws.index(p.ID) < 0 {
			ws.projects = append(ws.projects, p)
		}
	}
	ws.loaded = true
	if ws.currentID == "" && len(ws.projects) > 0 {
		ws.currentID = ws.projects[0].ID
	}
	logger.New(ctx).LogDebugf("workspace.load", "owner=%s projects=%d", ownerID, len(remote))
	return ws, nil
}

// Forget drops the owner's working set, as on sign-out.
func (w *Workspace) Forget(ownerID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.owners, ownerID)
}

func (w *Workspace) List(ctx context.Context, ownerID string) (ListView, error) {
	ws, err := w.acquire(ctx, ownerID)
	if err != nil {
		return ListView{}, err
	}
	defer ws.mu.Unlock()

	out := make([]domain.RenovationProject, 0, len(ws.projects))
	for _, p := range ws.projects {
		out = append(out, p.Clone())
	}
	return ListView{Projects: out, CurrentID: ws.currentID, Syncing: w.sync.Pending(ownerID)}, nil
}

func (w *Workspace) Get(ctx context.Context, ownerID, projectID string) (domain.RenovationProject, error) {
	ws, err := w.acquire(ctx, ownerID)
	if err != nil {
		return domain.RenovationProject{}, err
	}
	defer ws.mu.Unlock()

	idx := ws.index(projectID)
	if idx < 0 {
		return domain.RenovationProject{}, domain.ErrProjectNotFound
	}
	return ws.projects[idx].Clone(), nil
}

// Select makes the project the current one.
func (w *Workspace) Select(ctx context.Context, ownerID, projectID string) error {
	ws, err := w.acquire(ctx, ownerID)
	if err != nil {
		return err
	}
	defer ws.mu.Unlock()

	if ws.index(projectID) < 0 {
		return domain.ErrProjectNotFound
	}
	ws.currentID = projectID
	return nil
}

func (w *Workspace) add(ctx context.Context, ownerID string, build func(existing int) domain.RenovationProject) (domain.RenovationProject, error) {
	ws, err := w.acquire(ctx, ownerID)
	if err != nil {
		return domain.RenovationProject{}, err
	}
	defer ws.mu.Unlock()

	p := build(len(ws.projects))
	ws.prepend(p)
	w.sync.Enqueue(syncer.Upsert(ownerID, p))
	logger.New(ctx).LogInfof("workspace.create", "owner=%s project=%s items=%d", ownerID, p.ID, len(p.Items))
	return p.Clone(), nil
}

// CreateEmpty adds a project with no items and selects it.
func (w *Workspace) CreateEmpty(ctx context.Context, ownerID string) (domain.RenovationProject, error) {
	return w.add(ctx, ownerID, w.factory.Empty)
}

// CreateFromTemplate copies a template into a new project and selects it.
func (w *Workspace) CreateFromTemplate(ctx context.Context, ownerID, templateID string) (domain.RenovationProject, error) {
	t, ok := templates.Get(templateID)
	if !ok {
		return domain.RenovationProject{}, ErrTemplateNotFound
	}
	return w.add(ctx, ownerID, func(int) domain.RenovationProject {
		return w.factory.FromTemplate(t)
	})
}

// CreateFromSuggestion asks the suggester and stores the result as a new
// selected project. Only one call per owner runs at a time; the working
// set stays usable while it runs.
func (w *Workspace) CreateFromSuggestion(ctx context.Context, ownerID, prompt string) (domain.RenovationProject, error) {
	if strings.TrimSpace(ownerID) == "" {
		return domain.RenovationProject{}, store.ErrOwnerRequired
	}
	if strings.TrimSpace(prompt) == "" {
		return domain.RenovationProject{}, domain.ErrEmptyPrompt
	}

	ws := w.set(ownerID)
	if !ws.suggesting.CompareAndSwap(false, true) {
		return domain.RenovationProject{}, ErrSuggestionInFlight
	}
	defer ws.suggesting.Store(false)

	s, err := w.suggester.Suggest(ctx, prompt)
	if err != nil {
		return domain.RenovationProject{}, err
	}
	return w.add(ctx, ownerID, func(int) domain.RenovationProject {
		return w.factory.FromSuggestion(prompt, s)
	})
}

// Suggesting reports whether a suggestion call is running for the owner.
func (w *Workspace) Suggesting(ownerID string) bool {
	return w.set(ownerID).suggesting.Load()
}

// Delete removes the project locally and remotely. Deleting the current
// project clears the selection.
func (w *Workspace) Delete(ctx context.Context, ownerID, projectID string) error {
	ws, err := w.acquire(ctx, ownerID)
	if err != nil {
		return err
	}
	defer ws.mu.Unlock()

	idx := ws.index(projectID)
	if idx < 0 {
		return domain.ErrProjectNotFound
	}
	ws.projects = append(ws.projects[:idx], ws.projects[idx+1:]...)
	if ws.currentID == projectID {
		ws.currentID = ""
	}
	w.sync.Enqueue(syncer.Delete(ownerID, projectID))
	logger.New(ctx).LogInfof("workspace.delete", "owner=%s project=%s", ownerID, projectID)
	return nil
}
