package main

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"loanportal/internal/config"
	"loanportal/internal/database"
	"loanportal/internal/middleware"
	"loanportal/internal/modules/admin"
	"loanportal/internal/modules/auth"
	"loanportal/internal/modules/borrower"
	"loanportal/internal/modules/documents"
	"loanportal/internal/modules/merchant"
	jwtsvc "loanportal/internal/pkg/jwt"
	"loanportal/internal/repository"
	"loanportal/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	productRepo := repository.NewProductRepository(db)

	store := storage.NewDiskStore(cfg.UploadDir, cfg.StaticBase, cfg.SignedURLSecret)
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	var mailer auth.Mailer = auth.DevConsoleMailer{}

	authService := auth.NewService(userRepo, profileRepo, j, mailer)
	authHandler := auth.NewHandler(authService)

	borrowerService := borrower.NewService(loanRepo, productRepo, store)
	borrowerHandler := borrower.NewHandler(borrowerService)

	merchantService := merchant.NewService(loanRepo, productRepo, profileRepo)
	merchantHandler := merchant.NewHandler(merchantService)

	adminService := admin.NewService(loanRepo, profileRepo, productRepo)
	adminHandler := admin.NewHandler(adminService)

	documentsService := documents.NewService(loanRepo, store, cfg.SignedURLTTL)
	documentsHandler := documents.NewHandler(documentsService)

	r := gin.New()
	r.Use(gin.Logger(), middleware.CORS(), middleware.ErrorLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Documents are only served with a valid signature; the bare static
	// URL stored on a loan does not open the file.
	r.GET(cfg.StaticBase+"/*object", serveDocument(store))

	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api)

		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			documentsHandler.RegisterRoutes(protected)
			borrowerHandler.RegisterSharedRoutes(protected)

			borrowerGroup := protected.Group("/borrower", middleware.BorrowerOnly())
			borrowerHandler.RegisterRoutes(borrowerGroup)

			merchantGroup := protected.Group("/merchant", middleware.MerchantOnly())
			merchantHandler.RegisterRoutes(merchantGroup)

			adminGroup := protected.Group("/admin", middleware.AdminOnly())
			if cfg.RedisAddr != "" {
				rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
				adminGroup.Use(middleware.Idempotency(rdb, cfg.IdempotencyTTL))
				log.Printf("idempotency enabled addr=%s db=%d", cfg.RedisAddr, cfg.RedisDB)
			}
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	log.Printf("listening on :%s env=%s", cfg.AppPort, cfg.AppEnv)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		log.Fatal(err)
	}
}

func serveDocument(store *storage.DiskStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		object := strings.TrimPrefix(c.Param("object"), "/")
		if !store.VerifySignature(object, c.Query("expires"), c.Query("sig")) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "Invalid or expired document link"},
			})
			return
		}
		c.File(filepath.Join(store.BaseDir(), filepath.FromSlash(object)))
	}
}
