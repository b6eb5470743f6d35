package service

import (
	"context"

	"github.com/7svn/smeta-backend/internal/estimates/domain"
	"github.com/7svn/smeta-backend/internal/estimates/mutate"
	"github.com/7svn/smeta-backend/internal/estimates/syncer"
	"github.com/7svn/smeta-backend/internal/logger"
)

// edit applies fn to the project and, when it changed something, stores
// the new value and queues it for sync.
func (w *Workspace) edit(ctx context.Context, ownerID, projectID, op string, fn func(domain.RenovationProject) (mutate.Result, error)) (mutate.Result, error) {
	ws, err := w.acquire(ctx, ownerID)
	if err != nil {
		return mutate.Result{}, err
	}
	defer ws.mu.Unlock()

	idx := ws.index(projectID)
	if idx < 0 {
		return mutate.Result{}, domain.ErrProjectNotFound
	}

	res, err := fn(ws.projects[idx])
	if err != nil {
		return res, err
	}
	if res.Changed {
		ws.projects[idx] = res.Project
		w.sync.Enqueue(syncer.Upsert(ownerID, res.Project))
		logger.New(ctx).LogDebugf(op, "owner=%s project=%s last_modified=%d", ownerID, projectID, res.Project.LastModified)
	}
	res.Project = res.Project.Clone()
	return res, nil
}

func pure(fn func(domain.RenovationProject) mutate.Result) func(domain.RenovationProject) (mutate.Result, error) {
	return func(p domain.RenovationProject) (mutate.Result, error) {
		return fn(p), nil
	}
}

func (w *Workspace) Rename(ctx context.Context, ownerID, projectID, name string) (mutate.Result, error) {
	return w.edit(ctx, ownerID, projectID, "workspace.rename", pure(func(p domain.RenovationProject) mutate.Result {
		return w.mutator.Rename(p, name)
	}))
}

func (w *Workspace) AddItem(ctx context.Context, ownerID, projectID, category string) (mutate.Result, error) {
	return w.edit(ctx, ownerID, projectID, "workspace.add_item", pure(func(p domain.RenovationProject) mutate.Result {
		return w.mutator.AddItem(p, category)
	}))
}

func (w *Workspace) UpdateItem(ctx context.Context, ownerID, projectID, itemID string, patch domain.ItemPatch) (mutate.Result, error) {
	return w.edit(ctx, ownerID, projectID, "workspace.update_item", func(p domain.RenovationProject) (mutate.Result, error) {
		return w.mutator.UpdateItem(p, itemID, patch)
	})
}

func (w *Workspace) DeleteItem(ctx context.Context, ownerID, projectID, itemID string) (mutate.Result, error) {
	return w.edit(ctx, ownerID, projectID, "workspace.delete_item", pure(func(p domain.RenovationProject) mutate.Result {
		return w.mutator.DeleteItem(p, itemID)
	}))
}

// MoveItem drops sourceID onto targetID.
func (w *Workspace) MoveItem(ctx context.Context, ownerID, projectID, sourceID, targetID string) (mutate.Result, error) {
	return w.edit(ctx, ownerID, projectID, "workspace.move_item", pure(func(p domain.RenovationProject) mutate.Result {
		return w.mutator.MoveItem(p, sourceID, targetID)
	}))
}

func (w *Workspace) AddCategory(ctx context.Context, ownerID, projectID string) (mutate.Result, error) {
	return w.edit(ctx, ownerID, projectID, "workspace.add_category", pure(w.mutator.AddCategory))
}

func (w *Workspace) RenameCategory(ctx context.Context, ownerID, projectID, oldName, newName string) (mutate.Result, error) {
	return w.edit(ctx, ownerID, projectID, "workspace.rename_category", pure(func(p domain.RenovationProject) mutate.Result {
		return w.mutator.RenameCategory(p, oldName, newName)
	}))
}

func (w *Workspace) DeleteCategory(ctx context.Context, ownerID, projectID, name string) (mutate.Result, error) {
	return w.edit(ctx, ownerID, projectID, "workspace.delete_category", pure(func(p domain.RenovationProject) mutate.Result {
		return w.mutator.DeleteCategory(p, name)
	}))
}
