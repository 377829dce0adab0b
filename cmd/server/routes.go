package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"firmdesk.backend/internal/config"
	"firmdesk.backend/internal/domain/entities"
	"firmdesk.backend/internal/interfaces/http/handlers"
	"firmdesk.backend/internal/interfaces/http/middleware"
	"firmdesk.backend/internal/usecases"
	"firmdesk.backend/pkg/jwt"
	"firmdesk.backend/pkg/metrics"
)

type handlerDeps struct {
	influencer *usecases.InfluencerUsecase
	client     *usecases.ClientUsecase
	task       *usecases.TaskUsecase
	checklist  *usecases.ChecklistUsecase
	charge     *usecases.ChargeUsecase
	coupon     *usecases.CouponUsecase
	auth       *usecases.AuthUsecase
	jwt        *jwt.JWTService
}

func setupRouter(cfg *config.Config, deps *handlerDeps) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	influencerHandler := handlers.NewInfluencerHandler(deps.influencer)
	clientHandler := handlers.NewClientHandler(deps.client)
	taskHandler := handlers.NewTaskHandler(deps.task)
	checklistHandler := handlers.NewChecklistHandler(deps.checklist)
	chargeHandler := handlers.NewChargeHandler(deps.charge)
	couponHandler := handlers.NewCouponHandler(deps.coupon)
	authHandler := handlers.NewAuthHandler(deps.auth)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	adminOnly := middleware.RequireRole(string(entities.UserRoleAdmin))

	protected := v1.Group("")
	protected.Use(middleware.Auth(deps.jwt))
	{
		protected.GET("/influencers", influencerHandler.Get)
		protected.GET("/influencers/:id", influencerHandler.GetByID)
		// The update workflow mutates the identity service; staff reads
		// are fine but writes are admin-only.
		protected.PATCH("/influencers", adminOnly, influencerHandler.Update)

		protected.POST("/clients", clientHandler.Create)
		protected.GET("/clients", clientHandler.List)
		protected.GET("/clients/:id", clientHandler.Get)
		protected.PUT("/clients/:id", clientHandler.Update)
		protected.POST("/clients/:id/archive", clientHandler.Archive)
		protected.DELETE("/clients/:id", clientHandler.Delete)
		protected.GET("/clients/:id/tasks", taskHandler.ListByClient)
		protected.GET("/clients/:id/checklists", checklistHandler.ListByClient)
		protected.GET("/clients/:id/charges", chargeHandler.ListByClient)

		protected.POST("/tasks", taskHandler.Create)
		protected.GET("/tasks/:id", taskHandler.Get)
		protected.PUT("/tasks/:id", taskHandler.Update)
		protected.POST("/tasks/:id/transition", taskHandler.Transition)
		protected.DELETE("/tasks/:id", taskHandler.Delete)

		protected.POST("/checklists", checklistHandler.Create)
		protected.GET("/checklists/:id", checklistHandler.Get)
		protected.PUT("/checklists/:id", checklistHandler.Rename)
		protected.POST("/checklists/:id/items", checklistHandler.AddItem)
		protected.POST("/checklists/:id/items/:itemId/toggle", checklistHandler.ToggleItem)
		protected.DELETE("/checklists/:id", checklistHandler.Delete)

		protected.POST("/charges", chargeHandler.Create)
		protected.GET("/charges/:id", chargeHandler.Get)
		protected.POST("/charges/:id/transition", chargeHandler.Transition)

		protected.GET("/coupons", couponHandler.List)
		protected.GET("/coupons/:id", couponHandler.Get)

		admin := protected.Group("")
		admin.Use(adminOnly)
		{
			admin.POST("/coupons", couponHandler.Create)
			admin.POST("/coupons/:id/deactivate", couponHandler.Deactivate)
		}
	}

	return router
}
