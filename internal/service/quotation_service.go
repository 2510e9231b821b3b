package service

import (
	"time"

	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationService manages cotizaciones. Totals always come from
// CalcQuotationTotals; amounts sent by the client are ignored.
type QuotationService struct {
	repo     repository.QuotationRepository
	clients  repository.ClientRepository
	products repository.ProductRepository
	audit    *AuditService
}

// NewQuotationService creates a quotation service.
func NewQuotationService(
	repo repository.QuotationRepository,
	clients repository.ClientRepository,
	products repository.ProductRepository,
	audit *AuditService,
) *QuotationService {
	return &QuotationService{repo: repo, clients: clients, products: products, audit: audit}
}

// QuotationItemInput is one line of a quotation payload.
type QuotationItemInput struct {
	ProductID    *uint
	Name         string
	Brand        string
	Model        string
	SerialNumber string
	UnitPrice    decimal.Decimal
	Quantity     int
}

// QuotationInput is the create/update payload.
type QuotationInput struct {
	Date        *time.Time
	ClientID    uint
	ContactID   *uint
	Status      string
	DiscountPct decimal.Decimal
	TaxEnabled  bool
	TaxPct      decimal.Decimal
	Items       []QuotationItemInput
}

// List returns quotations matching the filter.
func (s *QuotationService) List(filter repository.QuotationListFilter) ([]models.Quotation, int64, error) {
	return s.repo.List(filter)
}

// Get fetches one quotation with items.
func (s *QuotationService) Get(id uint) (*models.Quotation, error) {
	quotation, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, ErrNotFound
	}
	return quotation, nil
}

// Create registers a quotation. The row is inserted under a provisional
// folio and renamed to the definitive Q-%05d inside the transaction.
func (s *QuotationService) Create(actorID uint, input QuotationInput) (*models.Quotation, error) {
	if input.ClientID == 0 || len(input.Items) == 0 {
		return nil, ErrInvalidInput
	}
	client, err := s.clients.GetByID(input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}

	items, lines, err := s.buildItems(input.Items)
	if err != nil {
		return nil, err
	}
	totals := CalcQuotationTotals(lines, input.DiscountPct, input.TaxEnabled, input.TaxPct)

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}
	status := input.Status
	if status == "" {
		status = constants.QuotationStatusDraft
	}

	quotation := models.Quotation{
		Folio:          constants.FolioProvisionalPrefix + uuid.NewString()[:12],
		Date:           date,
		ClientID:       input.ClientID,
		ContactID:      input.ContactID,
		UserID:         actorID,
		Status:         status,
		DiscountPct:    models.NewMoneyFromDecimal(input.DiscountPct),
		TaxEnabled:     input.TaxEnabled,
		TaxPct:         models.NewMoneyFromDecimal(input.TaxPct),
		Subtotal:       models.NewMoneyFromDecimal(totals.Subtotal),
		DiscountAmount: models.NewMoneyFromDecimal(totals.DiscountAmount),
		TaxAmount:      models.NewMoneyFromDecimal(totals.TaxAmount),
		Total:          models.NewMoneyFromDecimal(totals.Total),
	}
	if err := s.repo.CreateWithItems(&quotation, items); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionCreate,
		Table:     constants.TableQuotations,
		RecordID:  &quotation.ID,
		NewValues: quotationSnapshot(&quotation),
	})
	return &quotation, nil
}

// Update replaces the quotation head and items, recomputing totals.
func (s *QuotationService) Update(actorID, id uint, input QuotationInput) (*models.Quotation, error) {
	quotation, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, ErrNotFound
	}
	if input.ClientID == 0 || len(input.Items) == 0 {
		return nil, ErrInvalidInput
	}
	client, err := s.clients.GetByID(input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrNotFound
	}

	before := quotationSnapshot(quotation)

	items, lines, err := s.buildItems(input.Items)
	if err != nil {
		return nil, err
	}
	totals := CalcQuotationTotals(lines, input.DiscountPct, input.TaxEnabled, input.TaxPct)

	if input.Date != nil {
		quotation.Date = *input.Date
	}
	quotation.ClientID = input.ClientID
	quotation.ContactID = input.ContactID
	if input.Status != "" {
		quotation.Status = input.Status
	}
	quotation.DiscountPct = models.NewMoneyFromDecimal(input.DiscountPct)
	quotation.TaxEnabled = input.TaxEnabled
	quotation.TaxPct = models.NewMoneyFromDecimal(input.TaxPct)
	quotation.Subtotal = models.NewMoneyFromDecimal(totals.Subtotal)
	quotation.DiscountAmount = models.NewMoneyFromDecimal(totals.DiscountAmount)
	quotation.TaxAmount = models.NewMoneyFromDecimal(totals.TaxAmount)
	quotation.Total = models.NewMoneyFromDecimal(totals.Total)

	if err := s.repo.UpdateWithItems(quotation, items); err != nil {
		return nil, err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionUpdate,
		Table:     constants.TableQuotations,
		RecordID:  &quotation.ID,
		OldValues: before,
		NewValues: quotationSnapshot(quotation),
	})
	return quotation, nil
}

// Delete removes a quotation, keeping a before snapshot in the audit row.
func (s *QuotationService) Delete(actorID, id uint) error {
	quotation, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if quotation == nil {
		return ErrNotFound
	}

	before := quotationSnapshot(quotation)
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionDelete,
		Table:     constants.TableQuotations,
		RecordID:  &id,
		OldValues: before,
	})
	return nil
}

// SetEvidence stores the evidence filename.
func (s *QuotationService) SetEvidence(actorID, id uint, filename string) (*models.Quotation, error) {
	quotation, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, ErrNotFound
	}

	before := quotationSnapshot(quotation)
	if err := s.repo.UpdateEvidence(id, filename); err != nil {
		return nil, err
	}
	quotation.Evidence = filename

	s.audit.Record(AuditInput{
		UserID:    &actorID,
		Action:    constants.AuditActionUpdate,
		Table:     constants.TableQuotations,
		RecordID:  &quotation.ID,
		OldValues: before,
		NewValues: quotationSnapshot(quotation),
	})
	return quotation, nil
}

// buildItems validates product references, denormalizes product fields onto
// the lines and returns the rows plus the totals input.
func (s *QuotationService) buildItems(inputs []QuotationItemInput) ([]models.QuotationItem, []QuotationLine, error) {
	items := make([]models.QuotationItem, 0, len(inputs))
	lines := make([]QuotationLine, 0, len(inputs))
	for _, in := range inputs {
		item := models.QuotationItem{
			ProductID:    in.ProductID,
			Name:         in.Name,
			Brand:        in.Brand,
			Model:        in.Model,
			SerialNumber: in.SerialNumber,
			UnitPrice:    models.NewMoneyFromDecimal(in.UnitPrice),
			Quantity:     in.Quantity,
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if in.ProductID != nil && *in.ProductID > 0 {
			product, err := s.products.GetByID(*in.ProductID)
			if err != nil {
				return nil, nil, err
			}
			if product == nil {
				return nil, nil, ErrNotFound
			}
			if item.Name == "" {
				item.Name = product.Name
			}
			if item.Brand == "" {
				item.Brand = product.Brand
			}
			if item.Model == "" {
				item.Model = product.Model
			}
			if item.SerialNumber == "" {
				item.SerialNumber = product.SerialNumber
			}
			if in.UnitPrice.IsZero() {
				item.UnitPrice = product.Price
			}
		}
		if item.Name == "" {
			return nil, nil, ErrInvalidInput
		}
		items = append(items, item)
		lines = append(lines, QuotationLine{UnitPrice: item.UnitPrice.Decimal, Quantity: item.Quantity})
	}
	return items, lines, nil
}

func quotationSnapshot(quotation *models.Quotation) map[string]interface{} {
	itemCount := len(quotation.Items)
	return map[string]interface{}{
		"folio":                quotation.Folio,
		"fecha":                quotation.Date,
		"id_cliente":           quotation.ClientID,
		"id_contacto":          quotation.ContactID,
		"id_usuario":           quotation.UserID,
		"estatus":              quotation.Status,
		"descuento_porcentaje": quotation.DiscountPct,
		"iva_habilitado":       quotation.TaxEnabled,
		"iva_porcentaje":       quotation.TaxPct,
		"subtotal":             quotation.Subtotal,
		"descuento_importe":    quotation.DiscountAmount,
		"iva_importe":          quotation.TaxAmount,
		"total":                quotation.Total,
		"evidencia":            quotation.Evidence,
		"num_items":            itemCount,
	}
}
