package controllers

import (
	"net/http"

	"wellness-backend/services"
	"wellness-backend/utils"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	SettingSvc *services.SettingService
}

func NewSettingsController(svc *services.SettingService) *SettingsController {
	return &SettingsController{SettingSvc: svc}
}

type SettingsPayload struct {
	ShortName    string `json:"short_name"`
	SupportEmail string `json:"support_email"`
	CCList       string `json:"cc_list"`
	BCCList      string `json:"bcc_list"`
}

func (sc *SettingsController) GetSettings(c *gin.Context) {
	setting, err := sc.SettingSvc.Get()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load settings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}

func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var payload SettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	setting, err := sc.SettingSvc.Update(payload.ShortName, payload.SupportEmail, payload.CCList, payload.BCCList)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save settings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}
