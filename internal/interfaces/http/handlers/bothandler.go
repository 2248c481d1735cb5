package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatwarden/internal/application/bot/usecases"
	"chatwarden/internal/interfaces/http/middleware"
	"chatwarden/internal/shared/logger"
	"chatwarden/internal/shared/utils"
)

type BotHandler struct {
	createUseCase     *usecases.CreateBotUseCase
	listUseCase       *usecases.ListBotsUseCase
	updateUseCase     *usecases.UpdateBotUseCase
	deactivateUseCase *usecases.DeactivateBotUseCase
	logger            logger.Interface
}

func NewBotHandler(
	createUC *usecases.CreateBotUseCase,
	listUC *usecases.ListBotsUseCase,
	updateUC *usecases.UpdateBotUseCase,
	deactivateUC *usecases.DeactivateBotUseCase,
	logger logger.Interface,
) *BotHandler {
	return &BotHandler{
		createUseCase:     createUC,
		listUseCase:       listUC,
		updateUseCase:     updateUC,
		deactivateUseCase: deactivateUC,
		logger:            logger,
	}
}

type CreateBotRequest struct {
	Token string `json:"token" binding:"required"`
	Name  string `json:"name" binding:"max=255"`
}

type UpdateBotRequest struct {
	Name     *string `json:"name"`
	Token    *string `json:"token"`
	IsActive *bool   `json:"is_active"`
}

// Create registers a bot token for reconciliation
// @Summary Create bot
// @Tags Bots
// @Accept json
// @Produce json
// @Param request body CreateBotRequest true "Bot token and display name"
// @Success 201 {object} utils.APIResponse{data=dto.BotDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /bots [post]
func (h *BotHandler) Create(c *gin.Context) {
	var req CreateBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreateBotCommand{
		OwnerID: middleware.ActingOwnerID(c),
		Token:   req.Token,
		Name:    req.Name,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *BotHandler) List(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context(), middleware.ActingOwnerID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *BotHandler) Update(c *gin.Context) {
	botID, err := utils.ParseUintParam(c, "id", "bot")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), usecases.UpdateBotCommand{
		OwnerID:  middleware.ActingOwnerID(c),
		BotID:    botID,
		Name:     req.Name,
		Token:    req.Token,
		IsActive: req.IsActive,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "bot updated", result)
}

func (h *BotHandler) Deactivate(c *gin.Context) {
	botID, err := utils.ParseUintParam(c, "id", "bot")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deactivateUseCase.Execute(c.Request.Context(), middleware.ActingOwnerID(c), botID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
