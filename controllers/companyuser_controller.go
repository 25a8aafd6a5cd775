package controllers

import (
	"net/http"

	"wellness-backend/services"
	"wellness-backend/utils"

	"github.com/gin-gonic/gin"
)

type CompanyUserController struct {
	UserSvc *services.CompanyUserService
}

func NewCompanyUserController(svc *services.CompanyUserService) *CompanyUserController {
	return &CompanyUserController{UserSvc: svc}
}

type CompanyUserPayload struct {
	CompanyID uint   `json:"company_id" binding:"required"`
	FullName  string `json:"full_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

func (uc *CompanyUserController) CreateCompanyUser(c *gin.Context) {
	var payload CompanyUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := uc.UserSvc.Create(payload.CompanyID, payload.FullName, payload.Email, payload.Phone)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}

func (uc *CompanyUserController) GetCompanyUsers(c *gin.Context) {
	list, err := uc.UserSvc.List(queryUint(c, "company_id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list company users")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (uc *CompanyUserController) DeleteCompanyUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := uc.UserSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
