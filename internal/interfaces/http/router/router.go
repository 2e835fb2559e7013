package router

import (
	"net/http"

	"github.com/ecommerce/backend/internal/interfaces/http/handler"
	"github.com/ecommerce/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// DefaultPrefix is the path prefix of every API route
const DefaultPrefix = "/api"

// RouteRegistrar registers a set of routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts route registrars under a common prefix
type Router struct {
	engine     *gin.Engine
	prefix     string
	registrars []RouteRegistrar
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine) *Router {
	return &Router{engine: engine, prefix: DefaultPrefix}
}

// Register queues registrar for Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts every registered group under the prefix
func (r *Router) Setup() {
	api := r.engine.Group(r.prefix)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// DomainGroup collects the routes of one resource. Routes are mounted in
// declaration order, so static paths must come before parameterized ones
// when both are declared.
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
}

// NewDomainGroup creates a group mounted at prefix
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to every route of the group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, path, handlers)
}

// PATCH registers a PATCH route
func (dg *DomainGroup) PATCH(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPatch, path, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, path, handlers)
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, r := range dg.routes {
		group.Handle(r.method, r.path, r.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// UserRoutes builds the /users group. auth guards /me; loginLimit, when
// non-nil, throttles /login.
func UserRoutes(h *handler.UserHandler, auth, loginLimit gin.HandlerFunc) *DomainGroup {
	login := []gin.HandlerFunc{h.Login}
	if loginLimit != nil {
		login = append([]gin.HandlerFunc{loginLimit}, login...)
	}

	return NewDomainGroup("users", "/users").
		POST("/register", h.Register).
		POST("/login", login...).
		GET("", h.List).
		GET("/me", auth, h.Me).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete).
		POST("/:id/change-password", h.ChangePassword)
}

// ProductRoutes builds the /products group
func ProductRoutes(h *handler.ProductHandler) *DomainGroup {
	return NewDomainGroup("products", "/products").
		POST("", h.Create).
		GET("", h.List).
		GET("/featured", h.GetFeatured).
		GET("/categories", h.ListCategories).
		GET("/category/:category", h.GetByCategory).
		GET("/sku/:sku", h.GetBySKU).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete).
		PATCH("/:id/stock", h.AdjustStock)
}

// RegisterSystemRoutes mounts the root info document, the health check,
// the Swagger UI and the fallback for unknown routes
func RegisterSystemRoutes(engine *gin.Engine, h *handler.SystemHandler, swagger middleware.SwaggerConfig) {
	engine.GET("/", h.Info)
	engine.GET("/health", h.Health)

	protect := middleware.SwaggerProtection(swagger)
	engine.GET("/docs", protect, func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	engine.GET("/docs/*any", protect, ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.NoRoute(h.NotFound)
}
