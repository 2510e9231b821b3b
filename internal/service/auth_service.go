package service

import (
	"errors"
	"time"

	"github.com/gestor-next/internal/config"
	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles login, logout and token verification.
type AuthService struct {
	cfg      *config.Config
	users    repository.UserRepository
	sessions repository.SessionRepository
	audit    *AuditService
}

// NewAuthService creates an auth service.
func NewAuthService(
	cfg *config.Config,
	users repository.UserRepository,
	sessions repository.SessionRepository,
	audit *AuditService,
) *AuthService {
	return &AuthService{
		cfg:      cfg,
		users:    users,
		sessions: sessions,
		audit:    audit,
	}
}

// HashPassword hashes a password with bcrypt.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a password against its hash.
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// JWTClaims are the session token claims.
type JWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateJWT issues an HS256 token for the user.
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 2
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)

	claims := JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT validates and decodes a session token.
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// LoginInput carries the request metadata stored on the session row.
type LoginInput struct {
	Username  string
	Password  string
	IP        string
	UserAgent string
}

// Login authenticates a user and opens a session. Inactive accounts are
// rejected before the password check result is revealed.
func (s *AuthService) Login(input LoginInput) (*models.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(input.Username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if err := s.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if user.Status != constants.UserStatusActive {
		return nil, "", time.Time{}, ErrUserInactive
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	session := &models.Session{
		UserID:    user.ID,
		IP:        input.IP,
		UserAgent: input.UserAgent,
		Token:     token,
		LoginAt:   time.Now(),
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, "", time.Time{}, err
	}

	s.audit.Record(AuditInput{
		UserID:   &user.ID,
		Action:   constants.AuditActionLogin,
		Table:    constants.TableSessions,
		RecordID: &session.ID,
		NewValues: map[string]interface{}{
			"id_usuario":   user.ID,
			"direccion_ip": input.IP,
		},
	})

	return user, token, expiresAt, nil
}

// Logout closes the session holding the token. Unknown tokens close
// nothing and return no error.
func (s *AuthService) Logout(token string) error {
	session, err := s.sessions.GetActiveByToken(token)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	now := time.Now()
	if err := s.sessions.Close(token, now); err != nil {
		return err
	}

	s.audit.Record(AuditInput{
		UserID:   &session.UserID,
		Action:   constants.AuditActionLogout,
		Table:    constants.TableSessions,
		RecordID: &session.ID,
		NewValues: map[string]interface{}{
			"fecha_logout": now,
		},
	})
	return nil
}

// Verify checks that a token is both a valid JWT and bound to an active
// session, and returns the session owner.
func (s *AuthService) Verify(token string) (*models.User, error) {
	if _, err := s.ParseJWT(token); err != nil {
		return nil, ErrInvalidCredentials
	}
	session, err := s.sessions.GetActiveByToken(token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.GetByID(session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
