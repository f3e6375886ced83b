package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, d Deps) {
	h := NewHandlers(d)

	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/case-types", h.ListCaseTypes)

		clients := api.Group("/clients")
		clients.GET("", h.ListClients)
		clients.POST("", h.CreateClient)
		clients.GET("/count", h.CountClients)
		clients.GET("/watch", h.WatchClients)
		clients.GET("/:id", h.GetClient)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)
		clients.GET("/:id/cases", h.ListClientCases)
		clients.POST("/:id/attachments", h.AddClientAttachment)
		clients.DELETE("/:id/attachments", h.RemoveClientAttachment)

		cases := api.Group("/cases")
		cases.GET("", h.ListCases)
		cases.POST("", h.CreateCase)
		cases.DELETE("", h.DeleteCases)
		cases.POST("/batch", h.ImportCases)
		cases.GET("/count", h.CountCases)
		cases.GET("/watch", h.WatchCases)
		cases.GET("/:id", h.GetCase)
		cases.PUT("/:id", h.UpdateCase)
		cases.DELETE("/:id", h.DeleteCase)
		cases.POST("/:id/attachments", h.AddCaseAttachment)
		cases.DELETE("/:id/attachments", h.RemoveCaseAttachment)

		authGroup := api.Group("/auth")
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)
		authGroup.POST("/biometric", h.BiometricLogin)
		authGroup.POST("/identity", h.IdentityLogin)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/status", h.SessionStatus)

		api.GET("/preferences", h.GetPreferences)
		api.PUT("/preferences", h.UpdatePreferences)
	}
}
