package services

import (
	"context"
	"io"
	"log"

	"storegate/entities"
	"storegate/models"
	"storegate/repository"
	"storegate/state"
)

const productSnapshot = "products"

type ProductService struct {
	pr    repository.ProductRepository
	ir    repository.ImageRepository
	store *state.EntityStore[entities.Product]
	snap  repository.SnapshotRepository
}

func NewProductService(prodRepo repository.ProductRepository, imgRepo repository.ImageRepository, store *state.EntityStore[entities.Product], snap repository.SnapshotRepository) ProductService {
	return ProductService{
		pr:    prodRepo,
		ir:    imgRepo,
		store: store,
		snap:  snap,
	}
}

func (ps *ProductService) Store() *state.EntityStore[entities.Product] {
	return ps.store
}

func (ps *ProductService) Hydrate() {
	if ps.snap == nil {
		return
	}
	var prods []entities.Product
	ok, err := ps.snap.LoadSnapshot(productSnapshot, &prods)
	if err != nil || !ok {
		return
	}
	ps.store.Hydrate(prods)
}

func (ps *ProductService) FetchProducts(ctx context.Context) ([]entities.Product, error) {
	return ps.fetch(ctx, ps.pr.GetProducts)
}

func (ps *ProductService) FetchStoreProducts(ctx context.Context) ([]entities.Product, error) {
	return ps.fetch(ctx, ps.pr.GetStoreProducts)
}

func (ps *ProductService) fetch(ctx context.Context, get func(context.Context) ([]entities.Product, error)) (prods []entities.Product, err error) {
	token := ps.store.Start()
	prods, err = get(ctx)
	if err != nil {
		ps.store.Failed(token, err.Error())
		return nil, err
	}
	if ps.store.Succeeded(token, prods) && ps.snap != nil {
		if e := ps.snap.SaveSnapshot(productSnapshot, prods); e != nil {
			log.Printf("FetchProducts: %v", e)
		}
	}
	return prods, nil
}

func (ps *ProductService) CreateProduct(ctx context.Context, req models.ProductRequest) (prod entities.Product, err error) {
	if req.CategoryId == 0 {
		err = models.NewRemoteError(models.ErrNotAllowed, "the category field is required")
		return
	}
	prod, err = ps.pr.CreateProduct(ctx, req)
	if err != nil {
		return
	}
	ps.store.Created(prod)
	return
}

func (ps *ProductService) UpdateProduct(ctx context.Context, id int, req models.ProductRequest) (prod entities.Product, err error) {
	if req.CategoryId == 0 {
		err = models.NewRemoteError(models.ErrNotAllowed, "the category field is required")
		return
	}
	prod, err = ps.pr.UpdateProduct(ctx, id, req)
	if err != nil {
		return
	}
	ps.store.Updated(prod)
	return
}

func (ps *ProductService) DeleteProduct(ctx context.Context, id int) (err error) {
	err = ps.pr.DeleteProduct(ctx, id)
	if err != nil {
		return
	}
	ps.store.Removed(id)
	return
}

// UploadImage pushes the file to the external host and returns the hosted
// URL for the product form to keep. Failures surface as a plain message.
func (ps *ProductService) UploadImage(ctx context.Context, file io.Reader) (url string, err error) {
	if ps.ir == nil {
		err = models.NewRemoteError(models.ErrNotAllowed, "image host is not configured")
		return
	}
	url, err = ps.ir.UploadImage(ctx, file)
	return
}
