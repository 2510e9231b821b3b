package main

import (
	"github.com/gestor-next/internal/config"
	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/logger"
	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"
)

// managedTables lists every table that carries CRUD permissions.
var managedTables = []string{
	constants.TableUsers,
	constants.TableRoles,
	constants.TablePermissions,
	constants.TableRolePermissions,
	constants.TableUserPermissions,
	constants.TableSessions,
	constants.TableAudit,
	constants.TableClients,
	constants.TableClientAddresses,
	constants.TableCategories,
	constants.TableSuppliers,
	constants.TableSupplierContacts,
	constants.TableProducts,
	constants.TableQuotations,
	constants.TableQuotationItems,
}

var crudActions = []string{
	constants.ActionCreate,
	constants.ActionRead,
	constants.ActionUpdate,
	constants.ActionDelete,
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("database init failed: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("database migration failed: %v", err)
	}

	permissionRepo := repository.NewPermissionRepository(models.DB)
	roleRepo := repository.NewRoleRepository(models.DB)

	catalog := buildCatalog()
	created := 0
	for _, entry := range catalog {
		existing, err := permissionRepo.GetByTableAction(entry.Table, entry.Action)
		if err != nil {
			stdLog.Fatalf("permission lookup failed for %s/%s: %v", entry.Table, entry.Action, err)
		}
		if existing != nil {
			continue
		}
		permission := entry
		if err := permissionRepo.Create(&permission); err != nil {
			stdLog.Fatalf("permission create failed for %s/%s: %v", entry.Table, entry.Action, err)
		}
		created++
	}
	stdLog.Printf("permission catalog ready: %d entries, %d created", len(catalog), created)

	role, err := roleRepo.GetByName(constants.DefaultAdminRoleName)
	if err != nil {
		stdLog.Fatalf("role lookup failed: %v", err)
	}
	if role == nil {
		role = &models.Role{
			Name:        constants.DefaultAdminRoleName,
			Description: "Acceso completo a todos los módulos",
		}
		if err := roleRepo.Create(role); err != nil {
			stdLog.Fatalf("role create failed: %v", err)
		}
		stdLog.Printf("created role: %s", role.Name)
	}

	permissions, err := permissionRepo.List()
	if err != nil {
		stdLog.Fatalf("permission list failed: %v", err)
	}
	for _, permission := range permissions {
		if err := permissionRepo.GrantToRole(role.ID, permission.ID); err != nil {
			stdLog.Fatalf("role grant failed for %s/%s: %v", permission.Table, permission.Action, err)
		}
	}
	stdLog.Printf("role %s granted %d permissions", role.Name, len(permissions))

	if err := models.InitDefaultSuperadmin(cfg.Seed.AdminUsername, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
		stdLog.Fatalf("default superadmin bootstrap failed: %v", err)
	}

	stdLog.Println("seed finished")
}

func buildCatalog() []models.Permission {
	catalog := make([]models.Permission, 0, len(managedTables)*len(crudActions)+1)
	for _, table := range managedTables {
		for _, action := range crudActions {
			catalog = append(catalog, models.Permission{Table: table, Action: action})
		}
	}
	catalog = append(catalog, models.Permission{
		Table:  constants.TableSuppliers,
		Action: constants.ActionReassign,
	})
	return catalog
}
