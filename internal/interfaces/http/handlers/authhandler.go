package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatwarden/internal/application/auth/dto"
	"chatwarden/internal/application/auth/usecases"
	"chatwarden/internal/interfaces/http/middleware"
	"chatwarden/internal/shared/config"
	"chatwarden/internal/shared/logger"
	"chatwarden/internal/shared/utils"
)

type AuthHandler struct {
	loginUseCase          *usecases.LoginUseCase
	refreshTokenUseCase   *usecases.RefreshTokenUseCase
	getProfileUseCase     *usecases.GetProfileUseCase
	changePasswordUseCase *usecases.ChangePasswordUseCase
	cookieConfig          config.CookieConfig
	jwtConfig             config.JWTConfig
	logger                logger.Interface
}

func NewAuthHandler(
	loginUC *usecases.LoginUseCase,
	refreshTokenUC *usecases.RefreshTokenUseCase,
	getProfileUC *usecases.GetProfileUseCase,
	changePasswordUC *usecases.ChangePasswordUseCase,
	cookieConfig config.CookieConfig,
	jwtConfig config.JWTConfig,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		loginUseCase:          loginUC,
		refreshTokenUseCase:   refreshTokenUC,
		getProfileUseCase:     getProfileUC,
		changePasswordUseCase: changePasswordUC,
		cookieConfig:          cookieConfig,
		jwtConfig:             jwtConfig,
		logger:                logger,
	}
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required,min=3"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// Login authenticates an owner and sets the auth cookies
// @Summary Login
// @Description Authenticate with login and password, returns an access/refresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginCommand{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	utils.SuccessResponse(c, http.StatusOK, "login successful", gin.H{
		"user":          dto.ToOwnerDTO(result.Owner),
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"expires_in":    result.ExpiresIn,
	})
}

// Refresh exchanges a refresh token for a new pair
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest false "Refresh token; falls back to the refresh cookie"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	_ = c.ShouldBindJSON(&req)

	token := req.RefreshToken
	if token == "" {
		token = utils.GetTokenFromCookie(c, utils.RefreshTokenCookie)
	}
	if token == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "missing refresh token")
		return
	}

	result, err := h.refreshTokenUseCase.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		RefreshToken: token,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	utils.SuccessResponse(c, http.StatusOK, "token refreshed", gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"expires_in":    result.ExpiresIn,
	})
}

// Me returns the authenticated owner's profile
// @Summary Current profile
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse{data=dto.OwnerDTO}
// @Failure 401 {object} utils.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	ownerID := c.GetUint(middleware.ContextKeyUserID)

	profile, err := h.getProfileUseCase.Execute(c.Request.Context(), ownerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", profile)
}

// ChangePassword rotates the authenticated owner's password
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.changePasswordUseCase.Execute(c.Request.Context(), usecases.ChangePasswordCommand{
		OwnerID:     c.GetUint(middleware.ContextKeyUserID),
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "password changed", nil)
}

// Logout clears the auth cookies
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.ClearAuthCookies(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	accessMaxAge := h.jwtConfig.AccessExpMinutes * 60
	refreshMaxAge := h.jwtConfig.RefreshExpDays * 24 * 3600
	utils.SetAuthCookies(c, h.cookieConfig, accessToken, refreshToken, accessMaxAge, refreshMaxAge)
}
