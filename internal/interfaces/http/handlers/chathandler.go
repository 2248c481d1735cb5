package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatwarden/internal/application/chat/usecases"
	"chatwarden/internal/interfaces/http/middleware"
	"chatwarden/internal/shared/logger"
	"chatwarden/internal/shared/utils"
)

type ChatHandler struct {
	listUseCase    *usecases.ListChatsUseCase
	updateUseCase  *usecases.UpdateChatUseCase
	membersUseCase *usecases.ListChatMembersUseCase
	logger         logger.Interface
}

func NewChatHandler(
	listUC *usecases.ListChatsUseCase,
	updateUC *usecases.UpdateChatUseCase,
	membersUC *usecases.ListChatMembersUseCase,
	logger logger.Interface,
) *ChatHandler {
	return &ChatHandler{
		listUseCase:    listUC,
		updateUseCase:  updateUC,
		membersUseCase: membersUC,
		logger:         logger,
	}
}

type UpdateChatRequest struct {
	TypeID   *int `json:"type_id" binding:"omitempty,min=1,max=6"`
	StatusID *int `json:"status_id" binding:"omitempty,min=1,max=3"`
}

// List returns the chats discovered for the owner's bots
// @Summary List chats
// @Tags Chats
// @Produce json
// @Param bot_id query int false "Filter by bot"
// @Success 200 {object} utils.APIResponse{data=[]dto.ChatDTO}
// @Router /chats [get]
func (h *ChatHandler) List(c *gin.Context) {
	botID, err := utils.ParseUintQuery(c, "bot_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListChatsQuery{
		OwnerID: middleware.ActingOwnerID(c),
		BotID:   botID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Update patches a chat's type or status classification
// @Summary Update chat classification
// @Tags Chats
// @Accept json
// @Produce json
// @Param id path int true "Chat ID"
// @Param request body UpdateChatRequest true "Type and status"
// @Success 200 {object} utils.APIResponse{data=dto.ChatDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /chats/{id} [patch]
func (h *ChatHandler) Update(c *gin.Context) {
	chatID, err := utils.ParseUintParam(c, "id", "chat")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), usecases.UpdateChatCommand{
		OwnerID:  middleware.ActingOwnerID(c),
		ChatID:   chatID,
		TypeID:   req.TypeID,
		StatusID: req.StatusID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "chat updated", result)
}

// Members lists the membership links of one chat
// @Summary List chat members
// @Tags Chats
// @Produce json
// @Param id path int true "Chat ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.ChatMemberDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /chats/{id}/employees [get]
func (h *ChatHandler) Members(c *gin.Context) {
	chatID, err := utils.ParseUintParam(c, "id", "chat")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.membersUseCase.Execute(c.Request.Context(), middleware.ActingOwnerID(c), chatID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
