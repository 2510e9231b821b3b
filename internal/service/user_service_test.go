package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/gestor-next/internal/config"
	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newUserFixture(t *testing.T, name string) (*UserService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Session{},
		&models.AuditRecord{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: "user-service-test-secret", ExpireHours: 1}}
	users := repository.NewUserRepository(db)
	audit := NewAuditService(repository.NewAuditRepository(db))
	auth := NewAuthService(cfg, users, repository.NewSessionRepository(db), audit)
	return NewUserService(users, repository.NewRoleRepository(db), auth, audit), db
}

func seedUser(t *testing.T, db *gorm.DB, username string, superadmin bool) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		FirstName:    "Test",
		Email:        username + "@example.com",
		PasswordHash: "x",
		Status:       constants.UserStatusActive,
		IsSuperadmin: superadmin,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	return &user
}

func TestUserCreateRejectsDuplicateUsername(t *testing.T) {
	svc, db := newUserFixture(t, "user_dup")
	actor := seedUser(t, db, "dup_admin", true)

	input := CreateUserInput{Username: "dup_carlos", FirstName: "Carlos", Email: "dup_carlos@example.com", Password: "secreto1"}
	if _, err := svc.Create(actor.ID, input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	input.Email = "dup_otro@example.com"
	if _, err := svc.Create(actor.ID, input); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
}

func TestUserCreateMasksPasswordInAudit(t *testing.T) {
	svc, db := newUserFixture(t, "user_mask")
	actor := seedUser(t, db, "mask_admin", true)

	if _, err := svc.Create(actor.ID, CreateUserInput{
		Username: "mask_ana", FirstName: "Ana", Email: "mask_ana@example.com", Password: "clave-larga",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var row models.AuditRecord
	if err := db.Where("tabla = ?", constants.TableUsers).First(&row).Error; err != nil {
		t.Fatalf("expected audit row: %v", err)
	}
	if row.NewValues == nil {
		t.Fatalf("create audit must carry new values")
	}
	if !strings.Contains(*row.NewValues, constants.MaskedSecret) {
		t.Fatalf("snapshot must mask the password: %s", *row.NewValues)
	}
	if strings.Contains(*row.NewValues, "clave-larga") {
		t.Fatalf("snapshot leaked the plaintext password: %s", *row.NewValues)
	}
}

func TestUserUpdateGuardsSuperadminTarget(t *testing.T) {
	svc, db := newUserFixture(t, "user_guard")
	root := seedUser(t, db, "guard_root", true)
	regular := seedUser(t, db, "guard_regular", false)

	input := UpdateUserInput{FirstName: "Renombrado", Email: root.Email}
	if _, err := svc.Update(regular.ID, root.ID, input); !errors.Is(err, ErrSuperadminProtected) {
		t.Fatalf("non-superadmin actor must be rejected, got %v", err)
	}
	if _, err := svc.Update(root.ID, root.ID, input); err != nil {
		t.Fatalf("superadmin actor must pass the guard: %v", err)
	}
}

func TestUserDeleteGuardsSuperadminTarget(t *testing.T) {
	svc, db := newUserFixture(t, "user_guard_del")
	root := seedUser(t, db, "del_root", true)
	regular := seedUser(t, db, "del_regular", false)

	if err := svc.Delete(regular.ID, root.ID); !errors.Is(err, ErrSuperadminProtected) {
		t.Fatalf("want ErrSuperadminProtected, got %v", err)
	}
	var count int64
	db.Model(&models.User{}).Where("id = ?", root.ID).Count(&count)
	if count != 1 {
		t.Fatalf("superadmin row must survive the rejected delete")
	}
}

func TestUserSetStatusValidatesValue(t *testing.T) {
	svc, db := newUserFixture(t, "user_status")
	actor := seedUser(t, db, "status_admin", true)
	target := seedUser(t, db, "status_target", false)

	if _, err := svc.SetStatus(actor.ID, target.ID, "Pausado"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status must be rejected, got %v", err)
	}
	updated, err := svc.SetStatus(actor.ID, target.ID, constants.UserStatusInactive)
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if updated.Status != constants.UserStatusInactive {
		t.Fatalf("status want Inactivo got %s", updated.Status)
	}
}

func TestUserUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	svc, db := newUserFixture(t, "user_pwd_keep")
	actor := seedUser(t, db, "keep_admin", true)

	created, err := svc.Create(actor.ID, CreateUserInput{
		Username: "keep_luis", FirstName: "Luis", Email: "keep_luis@example.com", Password: "original1",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	hashBefore := created.PasswordHash

	updated, err := svc.Update(actor.ID, created.ID, UpdateUserInput{
		FirstName: "Luis", Email: created.Email, Password: "",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PasswordHash != hashBefore {
		t.Fatalf("empty password must keep the stored hash")
	}
}
