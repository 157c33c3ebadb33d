package services

import (
	"context"
	"log"

	"storegate/entities"
	"storegate/models"
	"storegate/repository"
	"storegate/state"
)

const categorySnapshot = "categories"

// CategoryService bridges the category store to its remote operations.
// Fetches mark the store loading, then resolve it with either the fresh
// list or the failure message; mutations update the collection in place
// and hand the error back to the caller without touching the list-level
// error. No method panics past its boundary.
type CategoryService struct {
	cr    repository.CategoryRepository
	store *state.EntityStore[entities.Category]
	snap  repository.SnapshotRepository
}

func NewCategoryService(catRepo repository.CategoryRepository, store *state.EntityStore[entities.Category], snap repository.SnapshotRepository) CategoryService {
	return CategoryService{
		cr:    catRepo,
		store: store,
		snap:  snap,
	}
}

func (cs *CategoryService) Store() *state.EntityStore[entities.Category] {
	return cs.store
}

func (cs *CategoryService) Hydrate() {
	if cs.snap == nil {
		return
	}
	var cats []entities.Category
	ok, err := cs.snap.LoadSnapshot(categorySnapshot, &cats)
	if err != nil || !ok {
		return
	}
	cs.store.Hydrate(cats)
}

func (cs *CategoryService) FetchCategories(ctx context.Context) ([]entities.Category, error) {
	return cs.fetch(ctx, cs.cr.GetCategories)
}

func (cs *CategoryService) FetchStoreCategories(ctx context.Context) ([]entities.Category, error) {
	return cs.fetch(ctx, cs.cr.GetStoreCategories)
}

func (cs *CategoryService) fetch(ctx context.Context, get func(context.Context) ([]entities.Category, error)) (cats []entities.Category, err error) {
	token := cs.store.Start()
	cats, err = get(ctx)
	if err != nil {
		cs.store.Failed(token, err.Error())
		return nil, err
	}
	if cs.store.Succeeded(token, cats) && cs.snap != nil {
		if e := cs.snap.SaveSnapshot(categorySnapshot, cats); e != nil {
			log.Printf("FetchCategories: %v", e)
		}
	}
	return cats, nil
}

func (cs *CategoryService) CreateCategory(ctx context.Context, req models.CategoryRequest) (cat entities.Category, err error) {
	if req.Name == "" {
		err = models.NewRemoteError(models.ErrNotAllowed, "category name can not be empty")
		return
	}
	cat, err = cs.cr.CreateCategory(ctx, req)
	if err != nil {
		return
	}
	cs.store.Created(cat)
	return
}

func (cs *CategoryService) UpdateCategory(ctx context.Context, id int, req models.CategoryRequest) (cat entities.Category, err error) {
	if id == 0 {
		err = models.NewRemoteError(models.ErrNotAllowed, "category id can not be empty")
		return
	}
	cat, err = cs.cr.UpdateCategory(ctx, id, req)
	if err != nil {
		return
	}
	cs.store.Updated(cat)
	return
}

func (cs *CategoryService) DeleteCategory(ctx context.Context, id int) (err error) {
	err = cs.cr.DeleteCategory(ctx, id)
	if err != nil {
		return
	}
	cs.store.Removed(id)
	return
}
