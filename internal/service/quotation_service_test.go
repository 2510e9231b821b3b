package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newQuotationFixture(t *testing.T, name string) (*QuotationService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Client{},
		&models.ClientAddress{},
		&models.Product{},
		&models.Quotation{},
		&models.QuotationItem{},
		&models.AuditRecord{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	audit := NewAuditService(repository.NewAuditRepository(db))
	svc := NewQuotationService(
		repository.NewQuotationRepository(db),
		repository.NewClientRepository(db),
		repository.NewProductRepository(db),
		audit,
	)
	return svc, db
}

func seedClient(t *testing.T, db *gorm.DB, name string) *models.Client {
	t.Helper()
	client := models.Client{Type: constants.ClientTypeCompany, Name: name, Status: constants.ClientStatusActive}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client failed: %v", err)
	}
	return &client
}

func TestQuotationCreateAssignsSequentialFolio(t *testing.T) {
	svc, db := newQuotationFixture(t, "quot_folio")
	client := seedClient(t, db, "ACME")

	input := QuotationInput{
		ClientID: client.ID,
		Items: []QuotationItemInput{
			{Name: "Impresora", UnitPrice: decimal.NewFromInt(1500), Quantity: 1},
		},
	}
	created, err := svc.Create(9, input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	want := fmt.Sprintf(constants.FolioFormat, created.ID)
	if created.Folio != want {
		t.Fatalf("folio want %s got %s", want, created.Folio)
	}
	if created.Status != constants.QuotationStatusDraft {
		t.Fatalf("default status want borrador got %s", created.Status)
	}
}

func TestQuotationCreateIgnoresClientAmountsAndClampsQuantity(t *testing.T) {
	svc, db := newQuotationFixture(t, "quot_totals")
	client := seedClient(t, db, "Totales SA")

	created, err := svc.Create(1, QuotationInput{
		ClientID:    client.ID,
		DiscountPct: decimal.NewFromInt(10),
		TaxEnabled:  true,
		TaxPct:      decimal.NewFromInt(16),
		Items: []QuotationItemInput{
			{Name: "Servidor", UnitPrice: decimal.RequireFromString("10333.33"), Quantity: 0},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Quantity 0 clamps to 1: subtotal 10333.33, minus 10% = 9300.00
	// (1033.33 rounded half up), plus 16% IVA 1488.00 = 10788.00.
	if created.Items[0].Quantity != 1 {
		t.Fatalf("quantity want 1 got %d", created.Items[0].Quantity)
	}
	if got := created.Subtotal.Decimal.StringFixed(2); got != "10333.33" {
		t.Fatalf("subtotal want 10333.33 got %s", got)
	}
	if got := created.DiscountAmount.Decimal.StringFixed(2); got != "1033.33" {
		t.Fatalf("discount want 1033.33 got %s", got)
	}
	if got := created.TaxAmount.Decimal.StringFixed(2); got != "1488.00" {
		t.Fatalf("tax want 1488.00 got %s", got)
	}
	if got := created.Total.Decimal.StringFixed(2); got != "10788.00" {
		t.Fatalf("total want 10788.00 got %s", got)
	}
}

func TestQuotationCreateDenormalizesProductFields(t *testing.T) {
	svc, db := newQuotationFixture(t, "quot_prod")
	client := seedClient(t, db, "Denorm SA")

	product := models.Product{
		Name:  "Laptop",
		Brand: "Lanix",
		Model: "X14",
		Price: models.NewMoneyFromDecimal(decimal.RequireFromString("18999.90")),
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	created, err := svc.Create(1, QuotationInput{
		ClientID: client.ID,
		Items: []QuotationItemInput{
			{ProductID: &product.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	item := created.Items[0]
	if item.Name != "Laptop" || item.Brand != "Lanix" || item.Model != "X14" {
		t.Fatalf("product fields not denormalized: %+v", item)
	}
	if got := item.UnitPrice.Decimal.StringFixed(2); got != "18999.90" {
		t.Fatalf("unit price want 18999.90 got %s", got)
	}
}

func TestQuotationCreateRequiresClientAndItems(t *testing.T) {
	svc, db := newQuotationFixture(t, "quot_valid")
	client := seedClient(t, db, "Valida SA")

	if _, err := svc.Create(1, QuotationInput{ClientID: 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing client must be rejected, got %v", err)
	}
	if _, err := svc.Create(1, QuotationInput{ClientID: client.ID}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty items must be rejected, got %v", err)
	}
	if _, err := svc.Create(1, QuotationInput{
		ClientID: client.ID + 100,
		Items:    []QuotationItemInput{{Name: "Algo", UnitPrice: decimal.NewFromInt(1), Quantity: 1}},
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown client must be rejected, got %v", err)
	}
}

func TestQuotationUpdateReplacesItemsAndRecomputes(t *testing.T) {
	svc, db := newQuotationFixture(t, "quot_update")
	client := seedClient(t, db, "Update SA")

	created, err := svc.Create(1, QuotationInput{
		ClientID: client.ID,
		Items: []QuotationItemInput{
			{Name: "Monitor", UnitPrice: decimal.NewFromInt(2000), Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(1, created.ID, QuotationInput{
		ClientID: client.ID,
		Status:   constants.QuotationStatusSent,
		Items: []QuotationItemInput{
			{Name: "Monitor", UnitPrice: decimal.NewFromInt(2000), Quantity: 2},
			{Name: "Teclado", UnitPrice: decimal.NewFromInt(500), Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := updated.Total.Decimal.StringFixed(2); got != "4500.00" {
		t.Fatalf("total want 4500.00 got %s", got)
	}
	if updated.Status != constants.QuotationStatusSent {
		t.Fatalf("status want enviada got %s", updated.Status)
	}

	var itemCount int64
	db.Model(&models.QuotationItem{}).Where("id_cotizacion = ?", created.ID).Count(&itemCount)
	if itemCount != 2 {
		t.Fatalf("items must be replaced, want 2 got %d", itemCount)
	}
}

func TestQuotationDeleteWritesBeforeSnapshot(t *testing.T) {
	svc, db := newQuotationFixture(t, "quot_delete")
	client := seedClient(t, db, "Borrar SA")

	created, err := svc.Create(4, QuotationInput{
		ClientID: client.ID,
		Items: []QuotationItemInput{
			{Name: "Router", UnitPrice: decimal.NewFromInt(900), Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(4, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted quotation must be gone, got %v", err)
	}

	var row models.AuditRecord
	if err := db.Where("tabla = ? AND accion = ?", constants.TableQuotations, constants.AuditActionDelete).
		First(&row).Error; err != nil {
		t.Fatalf("expected delete audit row: %v", err)
	}
	if row.OldValues == nil || row.NewValues != nil {
		t.Fatalf("delete audit must carry only the before snapshot")
	}
}
