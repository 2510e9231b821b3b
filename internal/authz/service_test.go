package authz

import (
	"testing"
	"time"

	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, name string) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.UserPermission{},
		&models.Session{},
	)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewService(
		repository.NewSessionRepository(db),
		repository.NewUserRepository(db),
		repository.NewPermissionRepository(db),
	)
	return svc, db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create fixture failed: %v", err)
	}
}

func openSession(t *testing.T, db *gorm.DB, userID uint, token string) {
	t.Helper()
	mustCreate(t, db, &models.Session{
		UserID:  userID,
		Token:   token,
		LoginAt: time.Now(),
	})
}

func TestAuthorizeMissingToken(t *testing.T) {
	svc, _ := newTestService(t, "authz_missing_token")

	for _, raw := range []string{"", "   ", "Bearer ", "bearer    "} {
		if _, err := svc.Authorize(raw, nil); err != ErrMissingToken {
			t.Fatalf("token %q: expected ErrMissingToken, got %v", raw, err)
		}
	}
}

func TestAuthorizeUnknownToken(t *testing.T) {
	svc, _ := newTestService(t, "authz_unknown_token")

	if _, err := svc.Authorize("Bearer no-such-token", nil); err != ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestAuthorizeLoggedOutToken(t *testing.T) {
	svc, db := newTestService(t, "authz_logged_out")

	user := models.User{Username: "ana", FirstName: "Ana", Email: "ana@example.com", PasswordHash: "x"}
	mustCreate(t, db, &user)
	now := time.Now()
	mustCreate(t, db, &models.Session{
		UserID:   user.ID,
		Token:    "closed-token",
		LoginAt:  now.Add(-time.Hour),
		LogoutAt: &now,
	})

	if _, err := svc.Authorize("closed-token", nil); err != ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession for closed session, got %v", err)
	}
}

func TestAuthorizeTokenOnlyEndpoint(t *testing.T) {
	svc, db := newTestService(t, "authz_token_only")

	user := models.User{Username: "beto", FirstName: "Beto", Email: "beto@example.com", PasswordHash: "x"}
	mustCreate(t, db, &user)
	openSession(t, db, user.ID, "tok-beto")

	userID, err := svc.Authorize("Bearer tok-beto", nil)
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user id %d, got %d", user.ID, userID)
	}
}

func TestAuthorizeDeniesWithoutGrant(t *testing.T) {
	svc, db := newTestService(t, "authz_denied")

	user := models.User{Username: "carla", FirstName: "Carla", Email: "carla@example.com", PasswordHash: "x"}
	mustCreate(t, db, &user)
	openSession(t, db, user.ID, "tok-carla")

	_, err := svc.Authorize("tok-carla", &Requirement{Table: "clientes", Action: "create"})
	if err != ErrPermissionDenied {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestAuthorizeSuperadminBypassesPermissionCheck(t *testing.T) {
	svc, db := newTestService(t, "authz_superadmin")

	user := models.User{
		Username:     "root",
		FirstName:    "Root",
		Email:        "root@example.com",
		PasswordHash: "x",
		IsSuperadmin: true,
	}
	mustCreate(t, db, &user)
	openSession(t, db, user.ID, "tok-root")

	userID, err := svc.Authorize("tok-root", &Requirement{Table: "clientes", Action: "delete"})
	if err != nil {
		t.Fatalf("superadmin should pass any check: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user id %d, got %d", user.ID, userID)
	}
}

func TestAuthorizeDirectGrant(t *testing.T) {
	svc, db := newTestService(t, "authz_direct_grant")

	user := models.User{Username: "dario", FirstName: "Dario", Email: "dario@example.com", PasswordHash: "x"}
	mustCreate(t, db, &user)
	perm := models.Permission{Table: "productos", Action: "read"}
	mustCreate(t, db, &perm)
	mustCreate(t, db, &models.UserPermission{UserID: user.ID, PermissionID: perm.ID})
	openSession(t, db, user.ID, "tok-dario")

	if _, err := svc.Authorize("tok-dario", &Requirement{Table: "productos", Action: "read"}); err != nil {
		t.Fatalf("direct grant should authorize: %v", err)
	}
	if _, err := svc.Authorize("tok-dario", &Requirement{Table: "productos", Action: "delete"}); err != ErrPermissionDenied {
		t.Fatalf("ungranted action should deny, got %v", err)
	}
}

func TestAuthorizeRoleGrant(t *testing.T) {
	svc, db := newTestService(t, "authz_role_grant")

	role := models.Role{Name: "Ventas"}
	mustCreate(t, db, &role)
	perm := models.Permission{Table: "cotizaciones", Action: "create"}
	mustCreate(t, db, &perm)
	mustCreate(t, db, &models.RolePermission{RoleID: role.ID, PermissionID: perm.ID})

	user := models.User{Username: "elsa", FirstName: "Elsa", Email: "elsa@example.com", PasswordHash: "x", RoleID: &role.ID}
	mustCreate(t, db, &user)
	openSession(t, db, user.ID, "tok-elsa")

	if _, err := svc.Authorize("tok-elsa", &Requirement{Table: "cotizaciones", Action: "create"}); err != nil {
		t.Fatalf("role grant should authorize: %v", err)
	}
}

func TestEffectivePermissionsUnion(t *testing.T) {
	svc, db := newTestService(t, "authz_union")

	role := models.Role{Name: "Almacen"}
	mustCreate(t, db, &role)
	rolePerm := models.Permission{Table: "productos", Action: "read"}
	mustCreate(t, db, &rolePerm)
	mustCreate(t, db, &models.RolePermission{RoleID: role.ID, PermissionID: rolePerm.ID})

	directPerm := models.Permission{Table: "clientes", Action: "read"}
	mustCreate(t, db, &directPerm)

	sharedPerm := models.Permission{Table: "categorias", Action: "read"}
	mustCreate(t, db, &sharedPerm)
	mustCreate(t, db, &models.RolePermission{RoleID: role.ID, PermissionID: sharedPerm.ID})

	user := models.User{Username: "fede", FirstName: "Fede", Email: "fede@example.com", PasswordHash: "x", RoleID: &role.ID}
	mustCreate(t, db, &user)
	mustCreate(t, db, &models.UserPermission{UserID: user.ID, PermissionID: directPerm.ID})
	mustCreate(t, db, &models.UserPermission{UserID: user.ID, PermissionID: sharedPerm.ID})

	set, err := svc.EffectivePermissions(user.ID)
	if err != nil {
		t.Fatalf("effective permissions failed: %v", err)
	}
	if len(set) != 3 {
		t.Fatalf("expected deduplicated set of 3, got %d", len(set))
	}
	for _, want := range []Requirement{
		{Table: "productos", Action: "read"},
		{Table: "clientes", Action: "read"},
		{Table: "categorias", Action: "read"},
	} {
		if !set.Has(want) {
			t.Fatalf("expected set to contain %+v", want)
		}
	}
}

func TestEffectivePermissionsEmptyIsNotError(t *testing.T) {
	svc, db := newTestService(t, "authz_empty_set")

	user := models.User{Username: "gina", FirstName: "Gina", Email: "gina@example.com", PasswordHash: "x"}
	mustCreate(t, db, &user)

	set, err := svc.EffectivePermissions(user.ID)
	if err != nil {
		t.Fatalf("empty grants must not error: %v", err)
	}
	if len(set) != 0 {
		t.Fatalf("expected empty set, got %d entries", len(set))
	}
}

func TestNormalizeToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"BEARER   abc  ", "abc"},
		{"  abc  ", "abc"},
		{"Bearer", "Bearer"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeToken(c.in); got != c.want {
			t.Fatalf("NormalizeToken(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
