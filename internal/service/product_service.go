package service

import (
	"strings"

	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService manages productos.
type ProductService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	audit      *AuditService
}

// NewProductService creates a product service.
func NewProductService(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	audit *AuditService,
) *ProductService {
	return &ProductService{repo: repo, categories: categories, suppliers: suppliers, audit: audit}
}

// ProductInput is the create/update payload.
type ProductInput struct {
	Name         string
	Brand        string
	Model        string
	SerialNumber string
	Description  string
	CategoryID   *uint
	SupplierID   *uint
	Price        decimal.Decimal
	Stock        int
}

// List returns products matching the filter.
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// Get fetches one product.
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create registers a product.
func (s *ProductService) Create(actorID uint, input ProductInput) (*models.Product, error) {
	if strings.TrimSpace(input.Name) == "" || input.Price.IsNegative() {
		return nil, ErrInvalidInput
	}
	if err := s.checkRefs(input); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:         strings.TrimSpace(input.Name),
		Brand:        strings.TrimSpace(input.Brand),
		Model:        strings.TrimSpace(input.Model),
		SerialNumber: strings.TrimSpace(input.SerialNumber),
		Description:  strings.TrimSpace(input.Description),
		CategoryID:   input.CategoryID,
		SupplierID:   input.SupplierID,
		Price:        models.NewMoneyFromDecimal(input.Price),
		Stock:        input.Stock,
	}
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionCreate,
		Table:     constants.TableProducts,
		RecordID:  &product.ID,
		NewValues: productSnapshot(&product),
	})
	return &product, nil
}

// Update edits a product.
func (s *ProductService) Update(actorID, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(input.Name) == "" || input.Price.IsNegative() {
		return nil, ErrInvalidInput
	}
	if err := s.checkRefs(input); err != nil {
		return nil, err
	}

	before := productSnapshot(product)
	product.Name = strings.TrimSpace(input.Name)
	product.Brand = strings.TrimSpace(input.Brand)
	product.Model = strings.TrimSpace(input.Model)
	product.SerialNumber = strings.TrimSpace(input.SerialNumber)
	product.Description = strings.TrimSpace(input.Description)
	product.CategoryID = input.CategoryID
	product.SupplierID = input.SupplierID
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.Stock = input.Stock
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionUpdate,
		Table:     constants.TableProducts,
		RecordID:  &product.ID,
		OldValues: before,
		NewValues: productSnapshot(product),
	})
	return product, nil
}

// SetPhoto stores the product photo filename.
func (s *ProductService) SetPhoto(actorID, id uint, filename string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	before := productSnapshot(product)
	product.Photo = filename
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionUpdate,
		Table:     constants.TableProducts,
		RecordID:  &product.ID,
		OldValues: before,
		NewValues: productSnapshot(product),
	})
	return product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(actorID, id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}

	before := productSnapshot(product)
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionDelete,
		Table:     constants.TableProducts,
		RecordID:  &id,
		OldValues: before,
	})
	return nil
}

func (s *ProductService) checkRefs(input ProductInput) error {
	if input.CategoryID != nil && *input.CategoryID > 0 {
		category, err := s.categories.GetByID(*input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrNotFound
		}
	}
	if input.SupplierID != nil && *input.SupplierID > 0 {
		supplier, err := s.suppliers.GetByID(*input.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return ErrNotFound
		}
	}
	return nil
}

func productSnapshot(product *models.Product) map[string]interface{} {
	return map[string]interface{}{
		"nombre":       product.Name,
		"marca":        product.Brand,
		"modelo":       product.Model,
		"no_serie":     product.SerialNumber,
		"descripcion":  product.Description,
		"id_categoria": product.CategoryID,
		"id_proveedor": product.SupplierID,
		"precio":       product.Price,
		"existencias":  product.Stock,
		"foto":         product.Photo,
	}
}
