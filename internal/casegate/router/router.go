// Package router wires the CaseGate services and HTTP routes.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/caseworks/casegate/internal/casegate/biz"
	"github.com/caseworks/casegate/internal/casegate/handler"
	"github.com/caseworks/casegate/internal/casegate/store"
	"github.com/caseworks/casegate/internal/pkg/middleware"
	"github.com/caseworks/casegate/pkg/authz"
	"github.com/caseworks/casegate/pkg/session"
)

// Register assembles the service graph over the validated matrix and mounts
// every route. All protected routes sit behind the auth middleware; the
// handlers behind them reach protected data only through the enforcement
// gateway.
func Register(engine *gin.Engine, factory store.Factory, contexts session.ContextStore, matrix *authz.Matrix, jwtSecret string) {
	logger.Info("Registering casegate routes...")

	access := biz.NewAccessService(factory, contexts, matrix)
	audit := biz.NewAuditService(access, factory)
	flags := biz.NewFlagService(access, factory)
	registry := biz.NewRegistryService(access, factory)
	sessions := biz.NewSessionService(contexts, factory)

	accessHandler := handler.NewAccessHandler(access)
	auditHandler := handler.NewAuditHandler(audit)
	flagHandler := handler.NewFlagHandler(flags)
	registryHandler := handler.NewRegistryHandler(registry)
	sessionHandler := handler.NewSessionHandler(sessions)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/v1")
	v1.Use(middleware.Auth(jwtSecret))
	{
		v1.POST("/access/check", accessHandler.Check)

		sess := v1.Group("/session/context")
		{
			sess.POST("", sessionHandler.Select)
			sess.DELETE("", sessionHandler.Clear)
			sess.GET("", sessionHandler.Get)
		}

		v1.GET("/audit/entries", auditHandler.List)

		flagGroup := v1.Group("/flags/:flag/cancellation")
		{
			flagGroup.POST("", flagHandler.Recommend)
			flagGroup.POST("/approve", flagHandler.Approve)
			flagGroup.POST("/reject", flagHandler.Reject)
		}

		programs := v1.Group("/programs")
		{
			programs.POST("", registryHandler.CreateProgram)
			programs.GET("", registryHandler.ListPrograms)
			programs.GET("/:program", registryHandler.GetProgram)
			programs.PUT("/:program", registryHandler.UpdateProgram)
			programs.POST("/:program/memberships", registryHandler.AssignMembership)
			programs.GET("/:program/memberships", registryHandler.ListMemberships)
			programs.DELETE("/:program/memberships/:user", registryHandler.RemoveMembership)
		}

		blocks := v1.Group("/blocks")
		{
			blocks.POST("", registryHandler.CreateBlock)
			blocks.DELETE("/:user/:client", registryHandler.DeleteBlock)
		}

		v1.PUT("/field-rules", registryHandler.UpsertFieldRule)
	}
}
