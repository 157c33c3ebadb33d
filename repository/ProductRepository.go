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

const (
	adminProductPath  = "/api/v1/admin/products"
	storeProductPath  = "/api/user/products"
	manageProductPath = "/api/v1/admin/manage-product"
)

type ProductRepository interface {
	GetProducts(ctx context.Context) ([]entities.Product, error)
	GetStoreProducts(ctx context.Context) ([]entities.Product, error)
	CreateProduct(ctx context.Context, req models.ProductRequest) (entities.Product, error)
	UpdateProduct(ctx context.Context, id int, req models.ProductRequest) (entities.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type ProductRepo struct {
	client *BackendClient
}

func NewProductRepository(client *BackendClient) (ProductRepository, error) {
	if client == nil {
		return nil, errors.New("client must be non-nil")
	}
	return &ProductRepo{client: client}, nil
}

func (p *ProductRepo) GetProducts(ctx context.Context) ([]entities.Product, error) {
	return p.fetch(ctx, adminProductPath)
}

func (p *ProductRepo) GetStoreProducts(ctx context.Context) ([]entities.Product, error) {
	return p.fetch(ctx, storeProductPath)
}

func (p *ProductRepo) fetch(ctx context.Context, path string) (prods []entities.Product, err error) {
	body, status, err := p.client.Get(ctx, path)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("GetProducts: %v", err)
		return
	}
	err = DecodeList(body, "products", &prods)
	if err != nil {
		log.Printf("GetProducts: %v", err)
	}
	return
}

func (p *ProductRepo) CreateProduct(ctx context.Context, req models.ProductRequest) (prod entities.Product, err error) {
	body, status, err := p.client.Send(ctx, http.MethodPost, adminProductPath, req)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("CreateProduct: %v", err)
		return
	}
	err = DecodeItem(body, "product", &prod)
	if err != nil {
		log.Printf("CreateProduct: %v", err)
	}
	return
}

func (p *ProductRepo) UpdateProduct(ctx context.Context, id int, req models.ProductRequest) (prod entities.Product, err error) {
	path := fmt.Sprintf("%s/%d", manageProductPath, id)
	body, status, err := p.client.Send(ctx, http.MethodPut, path, req)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("UpdateProduct: %v", err)
		return
	}
	err = DecodeItem(body, "product", &prod)
	if err != nil {
		log.Printf("UpdateProduct: %v", err)
	}
	return
}

func (p *ProductRepo) DeleteProduct(ctx context.Context, id int) (err error) {
	path := fmt.Sprintf("%s/%d", adminProductPath, id)
	body, status, err := p.client.Send(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("DeleteProduct: %v", err)
		return
	}
	err = CheckEnvelope(body)
	if err != nil {
		log.Printf("DeleteProduct: %v", err)
	}
	return
}
