package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatwarden/internal/application/employee/usecases"
	"chatwarden/internal/interfaces/http/middleware"
	"chatwarden/internal/shared/logger"
	"chatwarden/internal/shared/utils"
)

type EmployeeHandler struct {
	createUseCase     *usecases.CreateEmployeeUseCase
	listUseCase       *usecases.ListEmployeesUseCase
	updateUseCase     *usecases.UpdateEmployeeUseCase
	deactivateUseCase *usecases.DeactivateEmployeeUseCase
	logger            logger.Interface
}

func NewEmployeeHandler(
	createUC *usecases.CreateEmployeeUseCase,
	listUC *usecases.ListEmployeesUseCase,
	updateUC *usecases.UpdateEmployeeUseCase,
	deactivateUC *usecases.DeactivateEmployeeUseCase,
	logger logger.Interface,
) *EmployeeHandler {
	return &EmployeeHandler{
		createUseCase:     createUC,
		listUseCase:       listUC,
		updateUseCase:     updateUC,
		deactivateUseCase: deactivateUC,
		logger:            logger,
	}
}

type CreateEmployeeRequest struct {
	FullName         string  `json:"full_name" binding:"max=255"`
	TelegramUserID   *int64  `json:"telegram_user_id"`
	TelegramUsername *string `json:"telegram_username" binding:"omitempty,max=100"`
	IsExternal       bool    `json:"is_external"`
}

type UpdateEmployeeRequest struct {
	FullName         *string `json:"full_name"`
	TelegramUserID   *int64  `json:"telegram_user_id"`
	TelegramUsername *string `json:"telegram_username" binding:"omitempty,max=100"`
	IsExternal       *bool   `json:"is_external"`
	IsActive         *bool   `json:"is_active"`
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreateEmployeeCommand{
		OwnerID:          middleware.ActingOwnerID(c),
		FullName:         req.FullName,
		TelegramUserID:   req.TelegramUserID,
		TelegramUsername: req.TelegramUsername,
		IsExternal:       req.IsExternal,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListEmployeesQuery{
		OwnerID:    middleware.ActingOwnerID(c),
		ActiveOnly: c.Query("active") == "true",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	employeeID, err := utils.ParseUintParam(c, "id", "employee")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), usecases.UpdateEmployeeCommand{
		OwnerID:          middleware.ActingOwnerID(c),
		EmployeeID:       employeeID,
		FullName:         req.FullName,
		TelegramUserID:   req.TelegramUserID,
		TelegramUsername: req.TelegramUsername,
		IsExternal:       req.IsExternal,
		IsActive:         req.IsActive,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "employee updated", result)
}

func (h *EmployeeHandler) Deactivate(c *gin.Context) {
	employeeID, err := utils.ParseUintParam(c, "id", "employee")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deactivateUseCase.Execute(c.Request.Context(), middleware.ActingOwnerID(c), employeeID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
