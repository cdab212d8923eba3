package routes

import (
	authport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/auth"
	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API. The health and token
// endpoints are open, everything else requires a Bearer token.
func SetupRoutes(
	router *gin.Engine,
	transactionHandler *handler.TransactionHandler,
	partyHandler *handler.PartyHandler,
	commissionHandler *handler.CommissionHandler,
	authHandler *handler.AuthHandler,
	healthHandler *handler.HealthHandler,
	tokenProvider authport.TokenProvider,
	logger coreport.Logger,
) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Check)
		v1.GET("/token", authHandler.Token)

		protected := v1.Group("")
		protected.Use(middleware.Auth(tokenProvider, logger))
		{
			protected.POST("/transactions", transactionHandler.Create)
			protected.GET("/transactions", transactionHandler.List)
			protected.GET("/transactions/:id", transactionHandler.Get)
			protected.PUT("/transactions/:id", transactionHandler.Update)
			protected.PATCH("/transactions/:id/status", transactionHandler.ChangeStatus)
			protected.DELETE("/transactions/:id", transactionHandler.Delete)

			protected.POST("/transactions/:id/parties", partyHandler.Add)
			protected.DELETE("/parties/:id", partyHandler.Remove)

			protected.POST("/transactions/:id/commissions", commissionHandler.Create)
			protected.POST("/commissions/:id/pay", commissionHandler.Pay)
		}
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.CORS())
}
