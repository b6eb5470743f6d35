// Package syncer ships local project changes to the remote store.
//
// Mutations enqueue commands; a cron job flushes them. Commands for the
// same project coalesce so only the latest state is written. A failed
// write is logged and dropped: there is no retry and local state is
// never rolled back.
package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
	"github.com/7svn/smeta-backend/internal/estimates/store"
	"github.com/7svn/smeta-backend/internal/logger"
)

type Kind string

const (
	KindUpsert Kind = "upsert"
	KindDelete Kind = "delete"
)

// Command is one outbound change for the remote store.
type Command struct {
	Kind      Kind
	OwnerID   string
	ProjectID string
	// Project is the full value to write; unused for deletes.
	Project domain.RenovationProject
}

func Upsert(ownerID string, p domain.RenovationProject) Command {
	return Command{Kind: KindUpsert, OwnerID: ownerID, ProjectID: p.ID, Project: p.Clone()}
}

func Delete(ownerID, projectID string) Command {
	return Command{Kind: KindDelete, OwnerID: ownerID, ProjectID: projectID}
}

// FlushResult counts what a flush did.
type FlushResult struct {
	Applied int
	Failed  int
}

type Option func(*Synchronizer)

// WithPublisher announces every applied command.
func WithPublisher(p Publisher) Option {
	return func(s *Synchronizer) { s.pub = p }
}

// WithTimeout bounds each store call made during a flush.
func WithTimeout(d time.Duration) Option {
	return func(s *Synchronizer) { s.timeout = d }
}

type Synchronizer struct {
	store   store.Store
	pub     Publisher
	timeout time.Duration

	mu       sync.Mutex
	pending  map[string]Command
	order    []string
	inflight map[string]int

	flushMu sync.Mutex
	cron    *cron.Cron
}

func New(st store.Store, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		store:    st,
		timeout:  10 * time.Second,
		pending:  make(map[string]Command),
		inflight: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue records cmd, replacing any queued command for the same project.
func (s *Synchronizer) Enqueue(cmd Command) {
	if cmd.ProjectID == "" || cmd.OwnerID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[cmd.ProjectID]; !ok {
		s.order = append(s.order, cmd.ProjectID)
	}
	s.pending[cmd.ProjectID] = cmd
}

// Pending reports whether the owner has queued or in-flight commands.
func (s *Synchronizer) Pending(ownerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflight[ownerID] > 0 {
		return true
	}
	for _, cmd := range s.pending {
		if cmd.OwnerID == ownerID {
			return true
		}
	}
	return false
}

// Len is the number of queued commands.
func (s *Synchronizer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Synchronizer) take() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make([]Command, 0, len(s.order))
	for _, id := range s.order {
		cmd := s.pending[id]
		batch = append(batch, cmd)
		s.inflight[cmd.OwnerID]++
	}
	s.pending = make(map[string]Command)
	s.order = nil
	return batch
}

func (s *Synchronizer) done(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inflight[ownerID]--
	if s.inflight[ownerID] <= 0 {
		delete(s.inflight, ownerID)
	}
}

// Flush applies every queued command in enqueue order.
func (s *Synchronizer) Flush(ctx context.Context) FlushResult {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	var res FlushResult
	for _, cmd := range s.take() {
		if err := s.apply(ctx, cmd); err != nil {
			res.Failed++
			logger.New(ctx).LogErrorf("sync."+string(cmd.Kind), "owner=%s project=%s error=%v", cmd.OwnerID, cmd.ProjectID, err)
		} else {
			res.Applied++
			s.publish(ctx, cmd)
		}
		s.done(cmd.OwnerID)
	}
	return res
}

func (s *Synchronizer) apply(ctx context.Context, cmd Command) error {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	switch cmd.Kind {
	case KindUpsert:
		return s.store.Upsert(cctx, cmd.OwnerID, cmd.Project)
	case KindDelete:
		return s.store.Delete(cctx, cmd.OwnerID, cmd.ProjectID)
	default:
		return fmt.Errorf("unknown command kind %q", cmd.Kind)
	}
}

func (s *Synchronizer) publish(ctx context.Context, cmd Command) {
	if s.pub == nil {
		return
	}
	ev := Event{
		Kind:      cmd.Kind,
		OwnerID:   cmd.OwnerID,
		ProjectID: cmd.ProjectID,
	}
	if cmd.Kind == KindUpsert {
		ev.LastModified = cmd.Project.LastModified
	}
	if err := s.pub.Publish(ctx, ev); err != nil {
		logger.New(ctx).LogWarnf("sync.publish", "project=%s error=%v", cmd.ProjectID, err)
	}
}

// Start schedules Flush on the cron spec, e.g. "@every 2s" or "*/5 * * * * *".
func (s *Synchronizer) Start(spec string) error {
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, func() {
		res := s.Flush(context.Background())
		if res.Applied+res.Failed > 0 {
			logger.Background().LogDebugf("sync.flush", "applied=%d failed=%d", res.Applied, res.Failed)
		}
	}); err != nil {
		return fmt.Errorf("sync schedule %q: %w", spec, err)
	}
	s.cron = c
	c.Start()
	logger.Background().LogInfof("sync.start", "spec=%q", spec)
	return nil
}

// Stop halts the schedule and drains the queue once more.
func (s *Synchronizer) Stop(ctx context.Context) FlushResult {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	return s.Flush(ctx)
}
