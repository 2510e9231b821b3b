package repository

import (
	"errors"
	"time"

	"github.com/gestor-next/internal/models"

	"gorm.io/gorm"
)

// SessionRepository is the historico_sesiones data access interface.
type SessionRepository interface {
	Create(session *models.Session) error
	GetActiveByToken(token string) (*models.Session, error)
	Close(token string, at time.Time) error
	CloseAllForUser(userID uint, at time.Time) error
}

// GormSessionRepository is the GORM implementation.
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a session repository.
func NewSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Create inserts a session row.
func (r *GormSessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

// GetActiveByToken fetches the session for a token if it has not been
// logged out.
func (r *GormSessionRepository) GetActiveByToken(token string) (*models.Session, error) {
	var session models.Session
	err := r.db.
		Where("token_sesion = ? AND fecha_logout IS NULL", token).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Close stamps fecha_logout on the session holding the token.
func (r *GormSessionRepository) Close(token string, at time.Time) error {
	return r.db.Model(&models.Session{}).
		Where("token_sesion = ? AND fecha_logout IS NULL", token).
		Update("fecha_logout", at).Error
}

// CloseAllForUser stamps fecha_logout on every open session of a user.
func (r *GormSessionRepository) CloseAllForUser(userID uint, at time.Time) error {
	return r.db.Model(&models.Session{}).
		Where("id_usuario = ? AND fecha_logout IS NULL", userID).
		Update("fecha_logout", at).Error
}
