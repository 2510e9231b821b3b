package provider

import (
	"github.com/gestor-next/internal/authz"
	"github.com/gestor-next/internal/cache"
	"github.com/gestor-next/internal/config"
	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/logger"
	"github.com/gestor-next/internal/models"
	"github.com/gestor-next/internal/repository"
	"github.com/gestor-next/internal/service"
)

// Container wires repositories and services for the handlers.
type Container struct {
	Config *config.Config

	// Repositories
	UserRepo       repository.UserRepository
	RoleRepo       repository.RoleRepository
	PermissionRepo repository.PermissionRepository
	SessionRepo    repository.SessionRepository
	AuditRepo      repository.AuditRepository
	ClientRepo     repository.ClientRepository
	CategoryRepo   repository.CategoryRepository
	SupplierRepo   repository.SupplierRepository
	ProductRepo    repository.ProductRepository
	QuotationRepo  repository.QuotationRepository

	// Services
	AuthzService      *authz.Service
	AuditService      *service.AuditService
	AuthService       *service.AuthService
	UserService       *service.UserService
	RoleService       *service.RoleService
	PermissionService *service.PermissionService
	ClientService     *service.ClientService
	CategoryService   *service.CategoryService
	SupplierService   *service.SupplierService
	ProductService    *service.ProductService
	QuotationService  *service.QuotationService
	UploadService     *service.UploadService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.RoleRepo = repository.NewRoleRepository(db)
	c.PermissionRepo = repository.NewPermissionRepository(db)
	c.SessionRepo = repository.NewSessionRepository(db)
	c.AuditRepo = repository.NewAuditRepository(db)
	c.ClientRepo = repository.NewClientRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.SupplierRepo = repository.NewSupplierRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.QuotationRepo = repository.NewQuotationRepository(db)
}

func (c *Container) initServices() {
	c.AuthzService = authz.NewService(c.SessionRepo, c.UserRepo, c.PermissionRepo)
	c.AuditService = service.NewAuditService(c.AuditRepo)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.SessionRepo, c.AuditService)
	c.UserService = service.NewUserService(c.UserRepo, c.RoleRepo, c.AuthService, c.AuditService)
	c.RoleService = service.NewRoleService(c.RoleRepo, c.UserRepo, c.PermissionRepo, c.AuditService)
	c.PermissionService = service.NewPermissionService(c.PermissionRepo, c.UserRepo, c.RoleRepo, c.AuditService)
	c.ClientService = service.NewClientService(c.ClientRepo, c.AuditService)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.AuditService)
	c.SupplierService = service.NewSupplierService(c.SupplierRepo, c.AuditService)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.SupplierRepo, c.AuditService)
	c.QuotationService = service.NewQuotationService(c.QuotationRepo, c.ClientRepo, c.ProductRepo, c.AuditService)
	c.UploadService = service.NewUploadService(c.Config)
	c.registerUploadDescriptors()
}

// registerUploadDescriptors declares every uploadable column. Attachment
// goes through the owning service so the write is audited.
func (c *Container) registerUploadDescriptors() {
	c.UploadService.Register(service.UploadDescriptor{
		Table:  constants.TableUsers,
		Field:  "foto",
		Folder: "usuarios",
		Attach: func(actorID, recordID uint, filename string) error {
			_, err := c.UserService.SetPhoto(actorID, recordID, filename)
			return err
		},
		Lookup: func(recordID uint) (string, error) {
			user, err := c.UserRepo.GetByID(recordID)
			if err != nil {
				return "", err
			}
			if user == nil {
				return "", service.ErrNotFound
			}
			return user.Photo, nil
		},
	})
	c.UploadService.Register(service.UploadDescriptor{
		Table:  constants.TableProducts,
		Field:  "foto",
		Folder: "productos",
		Attach: func(actorID, recordID uint, filename string) error {
			_, err := c.ProductService.SetPhoto(actorID, recordID, filename)
			return err
		},
		Lookup: func(recordID uint) (string, error) {
			product, err := c.ProductRepo.GetByID(recordID)
			if err != nil {
				return "", err
			}
			if product == nil {
				return "", service.ErrNotFound
			}
			return product.Photo, nil
		},
	})
	c.UploadService.Register(service.UploadDescriptor{
		Table:  constants.TableQuotations,
		Field:  "evidencia",
		Folder: "cotizaciones",
		Attach: func(actorID, recordID uint, filename string) error {
			_, err := c.QuotationService.SetEvidence(actorID, recordID, filename)
			return err
		},
		Lookup: func(recordID uint) (string, error) {
			quotation, err := c.QuotationRepo.GetByID(recordID)
			if err != nil {
				return "", err
			}
			if quotation == nil {
				return "", service.ErrNotFound
			}
			return quotation.Evidence, nil
		},
	})
}
