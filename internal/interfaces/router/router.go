package router

import (
	"context"

	auctionsvc "remate/internal/application/auctions"
	bundlesvc "remate/internal/application/bundles"
	clientsvc "remate/internal/application/clients"
	docsvc "remate/internal/application/documents"
	healthsvc "remate/internal/application/health"
	provincesvc "remate/internal/application/provinces"
	reportsvc "remate/internal/application/reports"
	salesvc "remate/internal/application/sales"
	txsvc "remate/internal/application/transactions"
	auctionhandler "remate/internal/interfaces/handlers/auctions"
	bundlehandler "remate/internal/interfaces/handlers/bundles"
	clienthandler "remate/internal/interfaces/handlers/clients"
	dochandler "remate/internal/interfaces/handlers/documents"
	healthhandler "remate/internal/interfaces/handlers/health"
	provincehandler "remate/internal/interfaces/handlers/provinces"
	reporthandler "remate/internal/interfaces/handlers/reports"
	salehandler "remate/internal/interfaces/handlers/sales"
	txhandler "remate/internal/interfaces/handlers/transactions"
	"remate/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP layer is built from. Rdb and
// Converter are optional.
type Deps struct {
	DB             *gorm.DB
	Rdb            *redis.Client
	Schema         healthsvc.SchemaVersioner
	Converter      docsvc.Converter
	HealthAdminKey string
	AllowedOrigins []string
}

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) PingContext(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func CreateApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: deps.AllowedOrigins}))
	app.Use(middleware.HealthMarker(deps.Rdb))

	hh := &healthhandler.Handlers{
		Rdb:            deps.Rdb,
		DB:             &gormDBPinger{db: deps.DB},
		Schema:         deps.Schema,
		HealthAdminKey: deps.HealthAdminKey,
	}
	app.Get("/health/json", hh.JSON)
	app.Post("/health/reset", hh.Reset)

	api := app.Group("/api/v1")

	// Clients
	ch := &clienthandler.Handlers{Service: &clientsvc.Service{DB: deps.DB}}
	cg := api.Group("/clients")
	cg.Get("/", ch.List)
	cg.Get("/search", ch.Search)
	cg.Post("/", ch.Create)
	cg.Get("/:id", ch.Get)
	cg.Put("/:id", ch.Update)
	cg.Delete("/:id", ch.Delete)
	cg.Post("/:id/restore", ch.Restore)
	cg.Delete("/:id/purge", ch.Purge)

	// Auctions
	ah := &auctionhandler.Handlers{Service: &auctionsvc.Service{DB: deps.DB}}
	ag := api.Group("/auctions")
	ag.Get("/", ah.List)
	ag.Post("/", ah.Create)
	ag.Get("/:id", ah.Get)
	ag.Put("/:id", ah.Update)
	ag.Post("/:id/actions/:action", ah.Transition)
	ag.Put("/:id/status", ah.SetStatus)
	ag.Get("/:id/sellers", ch.Sellers)
	ag.Delete("/:id", ah.Delete)
	ag.Post("/:id/undelete", ah.Undelete)
	ag.Delete("/:id/purge", ah.Purge)

	// Bundles
	bh := &bundlehandler.Handlers{Service: &bundlesvc.Service{DB: deps.DB}}
	bg := api.Group("/bundles")
	bg.Get("/", bh.List)
	bg.Post("/", bh.Create)
	bg.Get("/:id", bh.Get)
	bg.Put("/:id", bh.Update)
	bg.Delete("/:id", bh.Delete)
	bg.Post("/:id/restore", bh.Restore)
	bg.Delete("/:id/purge", bh.Purge)

	// Sales
	sh := &salehandler.Handlers{Service: &salesvc.Service{DB: deps.DB}}
	sg := api.Group("/sales")
	sg.Get("/", sh.List)
	sg.Post("/", sh.Create)
	sg.Get("/:id", sh.Get)
	sg.Put("/:id", sh.Update)
	sg.Delete("/:id", sh.Delete)
	sg.Post("/:id/restore", sh.Restore)
	sg.Delete("/:id/purge", sh.Purge)

	// Transactions
	th := &txhandler.Handlers{Service: &txsvc.Service{DB: deps.DB}}
	tg := api.Group("/transactions")
	tg.Get("/", th.List)
	tg.Post("/", th.Create)
	tg.Get("/:id", th.Get)
	tg.Put("/:id", th.Update)
	tg.Delete("/:id", th.Delete)
	tg.Post("/:id/restore", th.Restore)
	tg.Delete("/:id/purge", th.Purge)

	// Reports
	rh := &reporthandler.Handlers{Service: &reportsvc.Service{DB: deps.DB}}
	rg := api.Group("/reports/auctions/:id")
	rg.Get("/bundles", rh.AuctionBundles)
	rg.Get("/balances", rh.AuctionBalances)
	rg.Get("/summary", rh.AuctionSummary)
	rg.Get("/clients/:clientId/purchases", rh.ClientPurchases)
	rg.Get("/sellers/:sellerId/sales", rh.SellerSales)

	ph := &provincehandler.Handlers{Service: &provincesvc.Service{DB: deps.DB}}
	api.Get("/provinces", ph.List)

	dh := &dochandler.Handlers{Converter: deps.Converter}
	api.Post("/documents/convert", dh.Convert)

	return app
}
