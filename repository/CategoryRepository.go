package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"storegate/entities"
	"storegate/models"
)

// Backend paths are preserved as observed, versioning quirks included.
const (
	adminCategoryPath = "/api/admin/v1/category"
	storeCategoryPath = "/api/v1/user/categories"
)

type CategoryRepository interface {
	GetCategories(ctx context.Context) ([]entities.Category, error)
	GetStoreCategories(ctx context.Context) ([]entities.Category, error)
	CreateCategory(ctx context.Context, req models.CategoryRequest) (entities.Category, error)
	UpdateCategory(ctx context.Context, id int, req models.CategoryRequest) (entities.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

type CategoryRepo struct {
	client *BackendClient
}

func NewCategoryRepository(client *BackendClient) (CategoryRepository, error) {
	if client == nil {
		return nil, errors.New("client must be non-nil")
	}
	return &CategoryRepo{client: client}, nil
}

func (c *CategoryRepo) GetCategories(ctx context.Context) ([]entities.Category, error) {
	return c.fetch(ctx, adminCategoryPath)
}

func (c *CategoryRepo) GetStoreCategories(ctx context.Context) ([]entities.Category, error) {
	return c.fetch(ctx, storeCategoryPath)
}

func (c *CategoryRepo) fetch(ctx context.Context, path string) (cats []entities.Category, err error) {
	body, status, err := c.client.Get(ctx, path)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("GetCategories: %v", err)
		return
	}
	err = DecodeList(body, "categories", &cats)
	if err != nil {
		log.Printf("GetCategories: %v", err)
	}
	return
}

func (c *CategoryRepo) CreateCategory(ctx context.Context, req models.CategoryRequest) (cat entities.Category, err error) {
	body, status, err := c.client.Send(ctx, http.MethodPost, adminCategoryPath, req)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("CreateCategory: %v", err)
		return
	}
	err = DecodeItem(body, "category", &cat)
	if err != nil {
		log.Printf("CreateCategory: %v", err)
	}
	return
}

func (c *CategoryRepo) UpdateCategory(ctx context.Context, id int, req models.CategoryRequest) (cat entities.Category, err error) {
	path := fmt.Sprintf("%s/%d", adminCategoryPath, id)
	body, status, err := c.client.Send(ctx, http.MethodPut, path, req)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("UpdateCategory: %v", err)
		return
	}
	err = DecodeItem(body, "category", &cat)
	if err != nil {
		log.Printf("UpdateCategory: %v", err)
	}
	return
}

func (c *CategoryRepo) DeleteCategory(ctx context.Context, id int) (err error) {
	path := fmt.Sprintf("%s/%d", adminCategoryPath, id)
	body, status, err := c.client.Send(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("DeleteCategory: %v", err)
		return
	}
	err = CheckEnvelope(body)
	if err != nil {
		log.Printf("DeleteCategory: %v", err)
	}
	return
}
