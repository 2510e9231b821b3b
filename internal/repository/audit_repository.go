package repository

import (
	"github.com/gestor-next/internal/models"

	"gorm.io/gorm"
)

// AuditRepository is the auditoria data access interface. Append-only:
// there is no update or delete.
type AuditRepository interface {
	Create(record *models.AuditRecord) error
	List(filter AuditListFilter) ([]models.AuditRecord, int64, error)
}

// GormAuditRepository is the GORM implementation.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates an audit repository.
func NewAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Create appends an audit row.
func (r *GormAuditRepository) Create(record *models.AuditRecord) error {
	return r.db.Create(record).Error
}

// List returns audit rows newest first.
func (r *GormAuditRepository) List(filter AuditListFilter) ([]models.AuditRecord, int64, error) {
	query := r.db.Model(&models.AuditRecord{})
	if filter.UserID > 0 {
		query = query.Where("id_usuario = ?", filter.UserID)
	}
	if filter.Table != "" {
		query = query.Where("tabla = ?", filter.Table)
	}
	if filter.Action != "" {
		query = query.Where("accion = ?", filter.Action)
	}
	if filter.DateFrom != nil {
		query = query.Where("fecha_accion >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("fecha_accion <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.AuditRecord
	if err := applyPagination(query.Order("id DESC"), filter.Page, filter.PageSize).
		Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
