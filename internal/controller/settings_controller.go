package controller

import (
	"leettrack_backend/internal/service"
	"leettrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	settingsService *service.SettingsService
}

func NewSettingsController(settingsService *service.SettingsService) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

// Get godoc
// @Summary The caller's feed settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/settings [get]
func (ctrl *SettingsController) Get(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	settings, err := ctrl.settingsService.Get(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, settings)
}

// Update godoc
// @Summary Update feed settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.UpdateSettingsInput true "Fields to change"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/settings [put]
func (ctrl *SettingsController) Update(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var input service.UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, "Invalid settings: "+err.Error())
		return
	}

	settings, err := ctrl.settingsService.Update(claims.UserID, input)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, settings)
}
