package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gestor-next/internal/logger"
	"github.com/gestor-next/internal/metrics"
	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"

	"github.com/shopspring/decimal"
)

// AuditInput describes one business mutation for the audit trail.
// OldValues is nil on create, NewValues is nil on delete.
type AuditInput struct {
	UserID    *uint
	Action    string
	Table     string
	RecordID  *uint
	OldValues map[string]interface{}
	NewValues map[string]interface{}
}

// AuditService appends rows to the auditoria table. Recording is
// best-effort: a failed write is logged and counted, never surfaced to
// the calling business flow.
type AuditService struct {
	repo repository.AuditRepository
}

// NewAuditService creates an audit service.
func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Record serializes the snapshots and appends one audit row. When both
// snapshots are present and canonically equal the write is skipped.
func (s *AuditService) Record(input AuditInput) {
	if s == nil || s.repo == nil {
		return
	}
	if strings.TrimSpace(input.Action) == "" || strings.TrimSpace(input.Table) == "" {
		return
	}

	oldJSON, err := serializeSnapshot(input.OldValues)
	if err != nil {
		s.fail(input, err)
		return
	}
	newJSON, err := serializeSnapshot(input.NewValues)
	if err != nil {
		s.fail(input, err)
		return
	}

	if oldJSON != nil && newJSON != nil && *oldJSON == *newJSON {
		return
	}

	record := &models.AuditRecord{
		UserID:     input.UserID,
		Action:     strings.TrimSpace(input.Action),
		Table:      strings.TrimSpace(input.Table),
		RecordID:   input.RecordID,
		OldValues:  oldJSON,
		NewValues:  newJSON,
		OccurredAt: time.Now(),
	}
	if err := s.repo.Create(record); err != nil {
		s.fail(input, err)
	}
}

// List queries the audit trail.
func (s *AuditService) List(filter repository.AuditListFilter) ([]models.AuditRecord, int64, error) {
	if s == nil || s.repo == nil {
		return []models.AuditRecord{}, 0, nil
	}
	return s.repo.List(filter)
}

func (s *AuditService) fail(input AuditInput, err error) {
	metrics.AuditWriteFailures.Inc()
	logger.Errorw("audit_write_failed",
		"error", err,
		"action", input.Action,
		"table", input.Table,
	)
}

// serializeSnapshot renders a snapshot as canonical JSON. Map keys are
// emitted sorted by json.Marshal, so equal snapshots always produce the
// same bytes.
func serializeSnapshot(snapshot map[string]interface{}) (*string, error) {
	if snapshot == nil {
		return nil, nil
	}
	normalized := make(map[string]interface{}, len(snapshot))
	for key, value := range snapshot {
		normalized[key] = normalizeValue(value)
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return nil, err
	}
	text := string(payload)
	return &text, nil
}

// normalizeValue maps values to stable JSON-friendly forms: timestamps to
// RFC3339, money to fixed 2-decimal strings, anything unserializable to
// fmt.Sprint.
func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return v.Format(time.RFC3339)
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.Format(time.RFC3339)
	case decimal.Decimal:
		return v.Round(2).StringFixed(2)
	case models.Money:
		return v.String()
	case map[string]interface{}:
		nested := make(map[string]interface{}, len(v))
		for key, item := range v {
			nested[key] = normalizeValue(item)
		}
		return nested
	case []interface{}:
		items := make([]interface{}, len(v))
		for i, item := range v {
			items[i] = normalizeValue(item)
		}
		return items
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return v
	case *uint:
		if v == nil {
			return nil
		}
		return *v
	default:
		if _, err := json.Marshal(v); err != nil {
			return fmt.Sprint(v)
		}
		return v
	}
}
