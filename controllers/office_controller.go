package controllers

import (
	"net/http"

	"wellness-backend/services"
	"wellness-backend/utils"

	"github.com/gin-gonic/gin"
)

type OfficeController struct {
	OfficeSvc *services.OfficeService
}

func NewOfficeController(svc *services.OfficeService) *OfficeController {
	return &OfficeController{OfficeSvc: svc}
}

type OfficePayload struct {
	CompanyID uint   `json:"company_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
}

type OfficeUpdatePayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (oc *OfficeController) CreateOffice(c *gin.Context) {
	var payload OfficePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	office, err := oc.OfficeSvc.Create(payload.CompanyID, payload.Name, payload.Address)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, office)
}

func (oc *OfficeController) GetOffices(c *gin.Context) {
	list, err := oc.OfficeSvc.List(queryUint(c, "company_id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list offices")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (oc *OfficeController) UpdateOffice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid office id")
		return
	}
	var payload OfficeUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	office, err := oc.OfficeSvc.Update(id, payload.Name, payload.Address)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, office)
}

func (oc *OfficeController) DeleteOffice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid office id")
		return
	}
	if err := oc.OfficeSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
