package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatwarden/internal/application/owner/usecases"
	"chatwarden/internal/interfaces/http/middleware"
	"chatwarden/internal/shared/logger"
	"chatwarden/internal/shared/utils"
)

// OwnerHandler serves the /users management endpoints. Creation and listing
// are admin-only; profile reads and updates are allowed for the account
// itself.
type OwnerHandler struct {
	createUseCase *usecases.CreateOwnerUseCase
	listUseCase   *usecases.ListOwnersUseCase
	getUseCase    *usecases.GetOwnerUseCase
	updateUseCase *usecases.UpdateOwnerUseCase
	logger        logger.Interface
}

func NewOwnerHandler(
	createUC *usecases.CreateOwnerUseCase,
	listUC *usecases.ListOwnersUseCase,
	getUC *usecases.GetOwnerUseCase,
	updateUC *usecases.UpdateOwnerUseCase,
	logger logger.Interface,
) *OwnerHandler {
	return &OwnerHandler{
		createUseCase: createUC,
		listUseCase:   listUC,
		getUseCase:    getUC,
		updateUseCase: updateUC,
		logger:        logger,
	}
}

type CreateOwnerRequest struct {
	Login        string `json:"login" binding:"required,min=3,max=50"`
	Password     string `json:"password" binding:"required,min=8"`
	FirstName    string `json:"first_name" binding:"max=100"`
	LastName     string `json:"last_name" binding:"max=100"`
	Email        string `json:"email" binding:"omitempty,email"`
	Company      string `json:"company" binding:"max=255"`
	LanguageCode string `json:"language_code" binding:"omitempty,oneof=en ru"`
	IsAdmin      bool   `json:"is_admin"`
}

type UpdateOwnerRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Company      *string `json:"company"`
	LanguageCode *string `json:"language_code" binding:"omitempty,oneof=en ru"`
	IsActive     *bool   `json:"is_active"`
	IsAdmin      *bool   `json:"is_admin"`
}

func (h *OwnerHandler) Create(c *gin.Context) {
	var req CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreateOwnerCommand{
		Login:        req.Login,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Company:      req.Company,
		LanguageCode: req.LanguageCode,
		IsAdmin:      req.IsAdmin,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *OwnerHandler) List(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *OwnerHandler) Get(c *gin.Context) {
	targetID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// Non-admins can only read their own account.
	if !c.GetBool(middleware.ContextKeyIsAdmin) && targetID != c.GetUint(middleware.ContextKeyUserID) {
		utils.ErrorResponse(c, http.StatusForbidden, "access denied")
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), targetID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *OwnerHandler) Update(c *gin.Context) {
	targetID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	isAdmin := c.GetBool(middleware.ContextKeyIsAdmin)
	if !isAdmin && targetID != c.GetUint(middleware.ContextKeyUserID) {
		utils.ErrorResponse(c, http.StatusForbidden, "access denied")
		return
	}

	var req UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.UpdateOwnerCommand{
		OwnerID:      targetID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Company:      req.Company,
		LanguageCode: req.LanguageCode,
	}
	// Only admins may toggle account flags.
	if isAdmin {
		cmd.IsActive = req.IsActive
		cmd.IsAdmin = req.IsAdmin
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user updated", result)
}
