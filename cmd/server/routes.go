package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"kyc-platform.backend/internal/interfaces/http/handlers"
	"kyc-platform.backend/internal/interfaces/http/middleware"
)

const (
	serviceName    = "kyc-platform-backend"
	serviceVersion = "0.1.0"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	ownerHandler    *handlers.OwnerHandler
	settingsHandler *handlers.SettingsHandler
	kycHandler      *handlers.KycHandler
	projectHandler  *handlers.ProjectHandler
	authMiddleware  gin.HandlerFunc
}

// applyCORSMiddleware echoes Origin only when it is allow-listed; "*" admits any origin.
// Tokens travel in the Authorization header, so credentials are never allowed.
func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	allowAny := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAny = true
		}
		allowed[origin] = struct{}{}
	}

	r.Use(func(c *gin.Context) {
		c.Header("Vary", "Origin")
		if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok || allowAny {
				c.Header("Access-Control-Allow-Origin", origin)
			}
		}
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Wallet sign-in (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/challenge", d.authHandler.Challenge)
			auth.POST("/login", d.authHandler.Login)
		}

		// Authority account
		v1.GET("/owner", d.ownerHandler.GetOwner)
		v1.POST("/owner/transfer", d.authMiddleware, d.ownerHandler.TransferOwnership)

		// Settings (reads public, writes authority only)
		settings := v1.Group("/settings")
		{
			settings.GET("", d.settingsHandler.GetSetting)
			settings.PUT("", d.authMiddleware, d.settingsHandler.SetSetting)
			settings.GET("/kyc", d.settingsHandler.GetKycSettings)
			settings.PUT("/kyc", d.authMiddleware, d.settingsHandler.SetKycSettings)
			settings.GET("/project", d.settingsHandler.GetProjectSettings)
			settings.PUT("/project", d.authMiddleware, d.settingsHandler.SetProjectSettings)
		}

		// KYC registry
		kyc := v1.Group("/kyc")
		{
			kyc.GET("/message-hash", d.kycHandler.GetCreateKycMessageHash)
			kyc.POST("", d.authMiddleware, middleware.IdempotencyMiddleware(), d.kycHandler.CreateKycMember)
			kyc.GET("/:address", d.kycHandler.GetKycInfo)
		}

		// Project registry
		projects := v1.Group("/projects")
		{
			projects.GET("/message-hash", d.projectHandler.GetCreateProjectMessageHash)
			projects.POST("", d.authMiddleware, middleware.IdempotencyMiddleware(), d.projectHandler.CreateProject)
			projects.GET("/:address", d.projectHandler.ListProjects)
			projects.GET("/:address/:index/kyc", d.projectHandler.GetKycByProject)
		}

		v1.GET("/balances/:address", d.projectHandler.GetBalance)
	}
}
