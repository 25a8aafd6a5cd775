package controllers

import (
	"errors"
	"net/http"

	"wellness-backend/services"
	"wellness-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CompanyController struct {
	CompanySvc *services.CompanyService
}

func NewCompanyController(svc *services.CompanyService) *CompanyController {
	return &CompanyController{CompanySvc: svc}
}

type CompanyPayload struct {
	Name      string `json:"name" binding:"required"`
	ShortCode string `json:"short_code"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

func (cc *CompanyController) CreateCompany(c *gin.Context) {
	var payload CompanyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	company, err := cc.CompanySvc.Create(payload.Name, payload.ShortCode, payload.Address, payload.Phone, payload.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, company)
}

func (cc *CompanyController) GetCompanies(c *gin.Context) {
	list, err := cc.CompanySvc.List()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list companies")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (cc *CompanyController) GetCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid company id")
		return
	}
	company, err := cc.CompanySvc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, company)
}

func (cc *CompanyController) UpdateCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid company id")
		return
	}
	var payload CompanyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	company, err := cc.CompanySvc.Update(id, payload.Name, payload.ShortCode, payload.Address, payload.Phone, payload.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, company)
}

func (cc *CompanyController) DeleteCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid company id")
		return
	}
	if err := cc.CompanySvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// respondServiceError maps common service failures to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var precondition *services.PreconditionError
	switch {
	case errors.As(err, &precondition):
		utils.JSONError(c, http.StatusUnprocessableEntity, precondition.Reason)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.JSONError(c, http.StatusNotFound, "record not found")
	default:
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	}
}
