package router

import (
	"fmt"
	"strings"

	"github.com/gestor-next/internal/cache"
	"github.com/gestor-next/internal/config"
	"github.com/gestor-next/internal/constants"
	"github.com/gestor-next/internal/http/handlers/api"
	"github.com/gestor-next/internal/logger"
	"github.com/gestor-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter builds the route table.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := api.New(c)
	gate := c.AuthzService

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiGroup := r.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("nombreUsuario")), handler.Login)
			auth.POST("/logout", SessionOnly(gate), handler.Logout)
			auth.GET("/verificar", SessionOnly(gate), handler.Verify)
		}

		users := apiGroup.Group("/usuarios")
		{
			users.GET("", SessionAuth(gate, constants.TableUsers, constants.ActionRead), handler.ListUsers)
			users.GET("/:id", SessionAuth(gate, constants.TableUsers, constants.ActionRead), handler.GetUser)
			users.POST("", SessionAuth(gate, constants.TableUsers, constants.ActionCreate), handler.CreateUser)
			users.PUT("/:id", SessionAuth(gate, constants.TableUsers, constants.ActionUpdate), handler.UpdateUser)
			users.PATCH("/:id/estatus", SessionAuth(gate, constants.TableUsers, constants.ActionUpdate), handler.SetUserStatus)
			users.DELETE("/:id", SessionAuth(gate, constants.TableUsers, constants.ActionDelete), handler.DeleteUser)
			users.GET("/:id/permisos", SessionAuth(gate, constants.TableUserPermissions, constants.ActionRead), handler.ListUserPermissions)
		}

		roles := apiGroup.Group("/roles")
		{
			roles.GET("", SessionAuth(gate, constants.TableRoles, constants.ActionRead), handler.ListRoles)
			roles.GET("/:id", SessionAuth(gate, constants.TableRoles, constants.ActionRead), handler.GetRole)
			roles.POST("", SessionAuth(gate, constants.TableRoles, constants.ActionCreate), handler.CreateRole)
			roles.PUT("/:id", SessionAuth(gate, constants.TableRoles, constants.ActionUpdate), handler.UpdateRole)
			roles.DELETE("/:id", SessionAuth(gate, constants.TableRoles, constants.ActionDelete), handler.DeleteRole)
			roles.GET("/:id/permisos", SessionAuth(gate, constants.TableRolePermissions, constants.ActionRead), handler.ListRolePermissions)
			roles.GET("/:id/usuarios", SessionAuth(gate, constants.TableRoles, constants.ActionRead), handler.ListRoleUsers)
		}

		permissions := apiGroup.Group("/permisos")
		{
			permissions.GET("", SessionAuth(gate, constants.TablePermissions, constants.ActionRead), handler.ListPermissions)
			permissions.POST("/aplicar", SessionAuth(gate, constants.TablePermissions, constants.ActionUpdate), handler.ApplyGrant)
		}

		clients := apiGroup.Group("/clientes")
		{
			clients.GET("", SessionAuth(gate, constants.TableClients, constants.ActionRead), handler.ListClients)
			clients.GET("/:id", SessionAuth(gate, constants.TableClients, constants.ActionRead), handler.GetClient)
			clients.POST("", SessionAuth(gate, constants.TableClients, constants.ActionCreate), handler.CreateClient)
			clients.PUT("/:id", SessionAuth(gate, constants.TableClients, constants.ActionUpdate), handler.UpdateClient)
			clients.PATCH("/:id/estatus", SessionAuth(gate, constants.TableClients, constants.ActionUpdate), handler.SetClientStatus)
			clients.DELETE("/:id", SessionAuth(gate, constants.TableClients, constants.ActionDelete), handler.DeleteClient)
			clients.GET("/:id/direcciones", SessionAuth(gate, constants.TableClientAddresses, constants.ActionRead), handler.ListClientAddresses)
			clients.POST("/:id/direcciones", SessionAuth(gate, constants.TableClientAddresses, constants.ActionCreate), handler.CreateClientAddress)
			clients.PUT("/:id/direcciones/:address_id", SessionAuth(gate, constants.TableClientAddresses, constants.ActionUpdate), handler.UpdateClientAddress)
			clients.DELETE("/:id/direcciones/:address_id", SessionAuth(gate, constants.TableClientAddresses, constants.ActionDelete), handler.DeleteClientAddress)
		}

		categories := apiGroup.Group("/categorias")
		{
			categories.GET("", SessionAuth(gate, constants.TableCategories, constants.ActionRead), handler.ListCategories)
			categories.GET("/:id", SessionAuth(gate, constants.TableCategories, constants.ActionRead), handler.GetCategory)
			categories.POST("", SessionAuth(gate, constants.TableCategories, constants.ActionCreate), handler.CreateCategory)
			categories.PUT("/:id", SessionAuth(gate, constants.TableCategories, constants.ActionUpdate), handler.UpdateCategory)
			categories.DELETE("/:id", SessionAuth(gate, constants.TableCategories, constants.ActionDelete), handler.DeleteCategory)
		}

		suppliers := apiGroup.Group("/proveedores")
		{
			suppliers.GET("", SessionAuth(gate, constants.TableSuppliers, constants.ActionRead), handler.ListSuppliers)
			suppliers.GET("/:id", SessionAuth(gate, constants.TableSuppliers, constants.ActionRead), handler.GetSupplier)
			suppliers.POST("", SessionAuth(gate, constants.TableSuppliers, constants.ActionCreate), handler.CreateSupplier)
			suppliers.PUT("/:id", SessionAuth(gate, constants.TableSuppliers, constants.ActionUpdate), handler.UpdateSupplier)
			suppliers.DELETE("/:id", SessionAuth(gate, constants.TableSuppliers, constants.ActionDelete), handler.DeleteSupplier)
			suppliers.POST("/:id/reasignar", SessionAuth(gate, constants.TableSuppliers, constants.ActionReassign), handler.ReassignSupplierProducts)
			suppliers.GET("/:id/contactos", SessionAuth(gate, constants.TableSupplierContacts, constants.ActionRead), handler.ListSupplierContacts)
			suppliers.POST("/:id/contactos", SessionAuth(gate, constants.TableSupplierContacts, constants.ActionCreate), handler.CreateSupplierContact)
			suppliers.PUT("/:id/contactos/:contact_id", SessionAuth(gate, constants.TableSupplierContacts, constants.ActionUpdate), handler.UpdateSupplierContact)
			suppliers.DELETE("/:id/contactos/:contact_id", SessionAuth(gate, constants.TableSupplierContacts, constants.ActionDelete), handler.DeleteSupplierContact)
		}

		products := apiGroup.Group("/productos")
		{
			products.GET("", SessionAuth(gate, constants.TableProducts, constants.ActionRead), handler.ListProducts)
			products.GET("/:id", SessionAuth(gate, constants.TableProducts, constants.ActionRead), handler.GetProduct)
			products.POST("", SessionAuth(gate, constants.TableProducts, constants.ActionCreate), handler.CreateProduct)
			products.PUT("/:id", SessionAuth(gate, constants.TableProducts, constants.ActionUpdate), handler.UpdateProduct)
			products.DELETE("/:id", SessionAuth(gate, constants.TableProducts, constants.ActionDelete), handler.DeleteProduct)
		}

		quotations := apiGroup.Group("/cotizaciones")
		{
			quotations.GET("", SessionAuth(gate, constants.TableQuotations, constants.ActionRead), handler.ListQuotations)
			quotations.GET("/:id", SessionAuth(gate, constants.TableQuotations, constants.ActionRead), handler.GetQuotation)
			quotations.POST("", SessionAuth(gate, constants.TableQuotations, constants.ActionCreate), handler.CreateQuotation)
			quotations.PUT("/:id", SessionAuth(gate, constants.TableQuotations, constants.ActionUpdate), handler.UpdateQuotation)
			quotations.DELETE("/:id", SessionAuth(gate, constants.TableQuotations, constants.ActionDelete), handler.DeleteQuotation)
		}

		apiGroup.GET("/auditoria", SessionAuth(gate, constants.TableAudit, constants.ActionRead), handler.ListAudit)

		// Uploads carry the target table in the form body, so the table
		// permission is enforced inside the handler.
		apiGroup.POST("/upload/imagen", SessionOnly(gate), handler.UploadFile)
	}

	r.GET("/archivo/:tabla/:id/:campo", SessionOnly(gate), handler.ServeFile)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
