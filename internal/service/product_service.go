package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/jcardenas/techstore/internal/metrics"
	"github.com/jcardenas/techstore/internal/port"
	"github.com/sirupsen/logrus"
)

type ProductService struct {
	products port.ProductRepository
	metrics  *metrics.StoreMetrics
	logger   *logrus.Entry
}

func NewProduct(products port.ProductRepository, m *metrics.StoreMetrics, logger *logrus.Logger) *ProductService {
	return &ProductService{
		products: products,
		metrics:  m,
		logger:   logger.WithField("component", "product_service"),
	}
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       domain.Money
	Category    string
	ImageURL    string
	Stock       int32
}

func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (domain.Product, error) {
	product, err := s.products.Insert(ctx, domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
		Active:      true,
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.Insert: %w", err)
	}

	s.logger.WithField("product_id", product.ID).Info("product created")
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	return s.products.GetByID(ctx, productID)
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *ProductService) ListActive(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListActive(ctx)
}

func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.products.ListByCategory(ctx, category)
}

// Search matches term case-insensitively against name, description and
// category, restricted to active products.
func (s *ProductService) Search(ctx context.Context, term string) ([]domain.Product, error) {
	return s.products.Search(ctx, term)
}

// Update overwrites all mutable fields wholesale; there are no partial-field
// semantics on this path.
func (s *ProductService) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	return s.products.Update(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) (bool, error) {
	deleted, err := s.products.Delete(ctx, productID)
	if err != nil {
		return false, err
	}

	if deleted {
		s.logger.WithField("product_id", productID).Info("product deleted")
	}
	return deleted, nil
}

func (s *ProductService) Deactivate(ctx context.Context, productID uuid.UUID) (bool, error) {
	found, err := s.products.SetActive(ctx, productID, false)
	if err != nil {
		return false, err
	}

	if found {
		s.logger.WithField("product_id", productID).Info("product deactivated")
	}
	return found, nil
}

// Activate is the inverse of Deactivate. The catalog UI only deactivates;
// reactivation is exposed on the API until product requirements settle it.
func (s *ProductService) Activate(ctx context.Context, productID uuid.UUID) (bool, error) {
	found, err := s.products.SetActive(ctx, productID, true)
	if err != nil {
		return false, err
	}

	if found {
		s.logger.WithField("product_id", productID).Info("product activated")
	}
	return found, nil
}

// ReduceStock reports false when the product is missing, inactive, or holds
// less stock than requested. The decrement is a single conditional update at
// the store, so it never drives stock negative under concurrent calls.
func (s *ProductService) ReduceStock(ctx context.Context, productID uuid.UUID, quantity int32) (bool, error) {
	ok, err := s.products.ReduceStock(ctx, productID, quantity)
	if err != nil {
		return false, err
	}

	if !ok {
		s.metrics.StockRejected()
		s.logger.WithFields(logrus.Fields{
			"product_id": productID,
			"quantity":   quantity,
		}).Warn("stock reduction rejected")
	}

	return ok, nil
}

// IncreaseStock reports false when the product is missing or inactive; there
// is no upper bound on stock.
func (s *ProductService) IncreaseStock(ctx context.Context, productID uuid.UUID, quantity int32) (bool, error) {
	return s.products.IncreaseStock(ctx, productID, quantity)
}
