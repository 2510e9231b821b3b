package repository

import (
	"errors"
	"fmt"

	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/models"

	"gorm.io/gorm"
)

// QuotationRepository is the cotizaciones data access interface.
type QuotationRepository interface {
	List(filter QuotationListFilter) ([]models.Quotation, int64, error)
	GetByID(id uint) (*models.Quotation, error)
	CreateWithItems(quotation *models.Quotation, items []models.QuotationItem) error
	UpdateWithItems(quotation *models.Quotation, items []models.QuotationItem) error
	Delete(id uint) error
	UpdateEvidence(id uint, filename string) error
}

// GormQuotationRepository is the GORM implementation.
type GormQuotationRepository struct {
	db *gorm.DB
}

// NewQuotationRepository creates a quotation repository.
func NewQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{db: db}
}

// List returns quotations matching the filter plus the total count.
func (r *GormQuotationRepository) List(filter QuotationListFilter) ([]models.Quotation, int64, error) {
	query := r.db.Model(&models.Quotation{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("folio LIKE ?", like)
	}
	if filter.Status != "" {
		query = query.Where("estatus = ?", filter.Status)
	}
	if filter.ClientID > 0 {
		query = query.Where("id_cliente = ?", filter.ClientID)
	}
	if filter.DateFrom != nil {
		query = query.Where("fecha >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("fecha <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := "id DESC"
	switch filter.OrderBy {
	case "fecha_asc":
		orderBy = "fecha ASC, id ASC"
	case "fecha_desc":
		orderBy = "fecha DESC, id DESC"
	case "total_asc":
		orderBy = "total ASC, id ASC"
	case "total_desc":
		orderBy = "total DESC, id DESC"
	}

	var quotations []models.Quotation
	if err := applyPagination(query.Preload("Client").Order(orderBy), filter.Page, filter.PageSize).
		Find(&quotations).Error; err != nil {
		return nil, 0, err
	}
	return quotations, total, nil
}

// GetByID fetches a quotation with its items and client.
func (r *GormQuotationRepository) GetByID(id uint) (*models.Quotation, error) {
	var quotation models.Quotation
	err := r.db.Preload("Client").Preload("Items").First(&quotation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quotation, nil
}

// CreateWithItems inserts the quotation under a provisional folio, then
// renames it to the definitive sequential folio inside the same transaction.
func (r *GormQuotationRepository) CreateWithItems(quotation *models.Quotation, items []models.QuotationItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quotation).Error; err != nil {
			return err
		}
		folio := fmt.Sprintf(constants.FolioFormat, quotation.ID)
		if err := tx.Model(&models.Quotation{}).Where("id = ?", quotation.ID).
			Update("folio", folio).Error; err != nil {
			return err
		}
		quotation.Folio = folio
		for i := range items {
			items[i].QuotationID = quotation.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		quotation.Items = items
		return nil
	})
}

// UpdateWithItems replaces the quotation row and its item lines atomically.
func (r *GormQuotationRepository) UpdateWithItems(quotation *models.Quotation, items []models.QuotationItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(quotation).Error; err != nil {
			return err
		}
		if err := tx.Where("id_cotizacion = ?", quotation.ID).Delete(&models.QuotationItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].QuotationID = quotation.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		quotation.Items = items
		return nil
	})
}

// Delete removes a quotation and its items.
func (r *GormQuotationRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_cotizacion = ?", id).Delete(&models.QuotationItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Quotation{}, id).Error
	})
}

// UpdateEvidence stores the evidence filename.
func (r *GormQuotationRepository) UpdateEvidence(id uint, filename string) error {
	return r.db.Model(&models.Quotation{}).Where("id = ?", id).
		Update("evidencia", filename).Error
}
