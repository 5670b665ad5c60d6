package handlers

import (
	"github.com/SAP-F-2025/form-builder-service/internal/avatar"
	"github.com/SAP-F-2025/form-builder-service/internal/services"
	"github.com/SAP-F-2025/form-builder-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	formHandler   *FormHandler
	avatarHandler *AvatarHandler
	submitPath    string
}

type RouterConfig struct {
	// SubmitPath is the legacy submission endpoint kept next to /api/v1/forms
	SubmitPath     string
	MaxBannerBytes int64
}

func NewHandlerManager(
	formService services.FormService,
	avatars *avatar.Service,
	config RouterConfig,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		formHandler:   NewFormHandler(formService, config.MaxBannerBytes, logger),
		avatarHandler: NewAvatarHandler(avatars, logger),
		submitPath:    config.SubmitPath,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	identified := router.Group("", UserIdentity())

	if hm.submitPath != "" {
		identified.POST(hm.submitPath, hm.formHandler.SubmitForm)
	}

	// API v1 routes
	v1 := identified.Group("/api/v1")
	{
		forms := v1.Group("/forms")
		{
			forms.POST("", hm.formHandler.SubmitForm)
			forms.GET("", hm.formHandler.ListForms)
			forms.POST("/import", hm.formHandler.ImportQuestions)
			forms.GET("/:id", hm.formHandler.GetForm)
			forms.DELETE("/:id", hm.formHandler.DeleteForm)
			forms.GET("/:id/banner", hm.formHandler.GetBanner)
			forms.GET("/:id/export", hm.formHandler.ExportForm)
		}

		profile := v1.Group("/profile")
		{
			profile.GET("/avatar", hm.avatarHandler.GetAvatar)
		}
	}
}
