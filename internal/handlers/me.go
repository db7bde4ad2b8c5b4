package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalink-health/vitalink-backend/internal/services"
)

type MeHandler struct {
	meService services.MeService
}

func NewMeHandler(meService services.MeService) *MeHandler {
	return &MeHandler{meService: meService}
}

func (mh *MeHandler) GetMe(c *gin.Context) {
	user, err := mh.meService.GetMe(c.Request.Context(), nil)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (mh *MeHandler) UpdateMe(c *gin.Context) {
	var req services.MeUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user, err := mh.meService.UpdateMe(c.Request.Context(), nil, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
