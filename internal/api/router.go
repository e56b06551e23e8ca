package api

import (
	"net/http"
	"time"

	"finance-tracker-backend/config"
	_ "finance-tracker-backend/docs"
	adminAudit "finance-tracker-backend/internal/api/v1/admin/audit"
	adminStats "finance-tracker-backend/internal/api/v1/admin/stats"
	adminTransaction "finance-tracker-backend/internal/api/v1/admin/transaction"
	adminUser "finance-tracker-backend/internal/api/v1/admin/user"
	"finance-tracker-backend/internal/api/v1/auth"
	"finance-tracker-backend/internal/api/v1/budget"
	"finance-tracker-backend/internal/api/v1/category"
	"finance-tracker-backend/internal/api/v1/notification"
	"finance-tracker-backend/internal/api/v1/transaction"
	userRoutes "finance-tracker-backend/internal/api/v1/user"
	"finance-tracker-backend/internal/middleware"
	"finance-tracker-backend/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter builds the HTTP handler. Database and Redis connections must be
// established by the caller.
func NewRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           5 * time.Minute,
	}))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.NewSuccessResponse("ok", nil))
	})

	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			userRoutes.RegisterRoutes(authorized)
			category.RegisterRoutes(authorized)
			transaction.RegisterRoutes(authorized)
			budget.RegisterRoutes(authorized)
			notification.RegisterRoutes(authorized)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			adminUser.RegisterRoutes(admin)
			adminTransaction.RegisterRoutes(admin)
			adminAudit.RegisterRoutes(admin)
			adminStats.RegisterRoutes(admin)
		}
	}

	return router
}
