package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/form-builder-service/internal/avatar"
	"github.com/SAP-F-2025/form-builder-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AvatarResponse struct {
	Seed string `json:"seed"`
	URL  string `json:"url"`
}

type AvatarHandler struct {
	BaseHandler
	avatars *avatar.Service
}

func NewAvatarHandler(avatars *avatar.Service, logger utils.Logger) *AvatarHandler {
	return &AvatarHandler{
		BaseHandler: NewBaseHandler(logger),
		avatars:     avatars,
	}
}

// GetAvatar returns the caller's avatar, creating its seed on first use
// @Router /profile/avatar [get]
func (h *AvatarHandler) GetAvatar(c *gin.Context) {
	userID := GetUserID(c)

	seed, err := h.avatars.Seed(c.Request.Context(), userID)
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to load avatar", err)
		return
	}

	c.JSON(http.StatusOK, AvatarResponse{
		Seed: seed,
		URL:  h.avatars.URLForSeed(seed),
	})
}
