package service

import (
	"testing"
	"time"

	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newAuditFixture(t *testing.T, name string) (*AuditService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.AuditRecord{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewAuditService(repository.NewAuditRepository(db)), db
}

func countAuditRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.AuditRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return count
}

func TestAuditRecordCreateHasOnlyNewValues(t *testing.T) {
	svc, db := newAuditFixture(t, "audit_create")

	actor := uint(7)
	recordID := uint(3)
	svc.Record(AuditInput{
		UserID:    &actor,
		Action:    "create",
		Table:     "clientes",
		RecordID:  &recordID,
		NewValues: map[string]interface{}{"nombre": "ACME", "estatus": "Activo"},
	})

	var row models.AuditRecord
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("expected one audit row: %v", err)
	}
	if row.OldValues != nil {
		t.Fatalf("create must not carry old values, got %v", *row.OldValues)
	}
	if row.NewValues == nil {
		t.Fatalf("create must carry new values")
	}
	if row.Table != "clientes" || row.Action != "create" {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.UserID == nil || *row.UserID != actor {
		t.Fatalf("expected actor %d, got %v", actor, row.UserID)
	}
}

func TestAuditRecordSkipsEqualSnapshots(t *testing.T) {
	svc, db := newAuditFixture(t, "audit_noop")

	snapshot := map[string]interface{}{"nombre": "ACME", "telefono": "555"}
	same := map[string]interface{}{"telefono": "555", "nombre": "ACME"}
	svc.Record(AuditInput{
		Action:    "update",
		Table:     "clientes",
		OldValues: snapshot,
		NewValues: same,
	})

	if got := countAuditRows(t, db); got != 0 {
		t.Fatalf("equal snapshots must not write, got %d rows", got)
	}
}

func TestAuditRecordWritesDifferingSnapshots(t *testing.T) {
	svc, db := newAuditFixture(t, "audit_diff")

	svc.Record(AuditInput{
		Action:    "update",
		Table:     "productos",
		OldValues: map[string]interface{}{"precio": decimal.NewFromFloat(10)},
		NewValues: map[string]interface{}{"precio": decimal.NewFromFloat(12.5)},
	})

	var row models.AuditRecord
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("expected one audit row: %v", err)
	}
	if row.OldValues == nil || row.NewValues == nil {
		t.Fatalf("update must carry both snapshots")
	}
	if *row.OldValues != `{"precio":"10.00"}` {
		t.Fatalf("old snapshot not normalized: %s", *row.OldValues)
	}
	if *row.NewValues != `{"precio":"12.50"}` {
		t.Fatalf("new snapshot not normalized: %s", *row.NewValues)
	}
}

func TestAuditRecordNormalizesTimes(t *testing.T) {
	svc, db := newAuditFixture(t, "audit_times")

	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	svc.Record(AuditInput{
		Action:    "create",
		Table:     "cotizaciones",
		NewValues: map[string]interface{}{"fecha": at},
	})

	var row models.AuditRecord
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("expected one audit row: %v", err)
	}
	if *row.NewValues != `{"fecha":"2026-03-14T09:26:53Z"}` {
		t.Fatalf("time not normalized to RFC3339: %s", *row.NewValues)
	}
}

func TestAuditRecordNilActorAllowed(t *testing.T) {
	svc, db := newAuditFixture(t, "audit_nil_actor")

	svc.Record(AuditInput{
		Action:    "login",
		Table:     "usuarios",
		NewValues: map[string]interface{}{"resultado": "fallido"},
	})

	var row models.AuditRecord
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("expected one audit row: %v", err)
	}
	if row.UserID != nil {
		t.Fatalf("expected nil actor, got %v", *row.UserID)
	}
}

func TestAuditRecordIgnoresBlankAction(t *testing.T) {
	svc, db := newAuditFixture(t, "audit_blank")

	svc.Record(AuditInput{Action: "  ", Table: "clientes"})
	svc.Record(AuditInput{Action: "create", Table: ""})

	if got := countAuditRows(t, db); got != 0 {
		t.Fatalf("blank action/table must be ignored, got %d rows", got)
	}
}
