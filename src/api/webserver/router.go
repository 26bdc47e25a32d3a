package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/defi-mexico/platform-backend/src/api/config"
	"github.com/defi-mexico/platform-backend/src/api/middleware"
	"github.com/defi-mexico/platform-backend/src/api/moderation"
	"github.com/defi-mexico/platform-backend/src/api/notify"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.SiteURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	svc := moderation.NewService(moderation.NewStore(db), notify.NewRedisDispatcher(rdb))

	authH := NewAuth(db, []byte(cfg.JWTSecret))
	propH := NewProposals(svc)
	contentH := NewContent(db)
	limiter := NewRateLimiter(cfg.ProposalRateLimit, time.Hour)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authH.Register)
		v1.POST("/auth/login", authH.Login)

		// Public display pages read these without a token
		v1.GET("/content/:type", contentH.List)
		v1.GET("/content/:type/:slug", contentH.Get)

		secured := v1.Group("")
		secured.Use(middleware.JWT([]byte(cfg.JWTSecret)))
		{
			secured.POST("/proposals", RateLimitMiddleware(limiter), propH.Create)
			secured.GET("/proposals", propH.List)
			secured.GET("/proposals/:id", propH.Get)

			admin := secured.Group("")
			admin.Use(middleware.AdminOnly())
			{
				admin.POST("/proposals/:id/approve", propH.Approve)
				admin.POST("/proposals/:id/reject", propH.Reject)
				admin.DELETE("/proposals/:id", propH.Delete)
			}
		}
	}
}
