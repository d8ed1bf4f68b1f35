package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internhub/internhub/internal/app/models/dto"
	"github.com/internhub/internhub/internal/app/services"
	"github.com/internhub/internhub/internal/middleware"
)

// AuthController handles authentication and password recovery endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// GetPublicKey returns the RSA public key for password encryption
func (c *AuthController) GetPublicKey(ctx *gin.Context) {
	pem, err := c.authService.PublicKeyPEM()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PublicKeyResponse{PublicKey: pem}))
}

// Login authenticates credentials and returns a token pair
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	tokens, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tokens))
}

// RefreshToken rotates a refresh token
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	tokens, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tokens))
}

// Logout revokes all refresh tokens of the caller
func (c *AuthController) Logout(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	if err := c.authService.Logout(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Logged out"}))
}

// RequestOTP sends a one-time code to the email
func (c *AuthController) RequestOTP(ctx *gin.Context) {
	var req dto.RequestOTPRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	if err := c.authService.RequestOTP(ctx.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "OTP sent"}))
}

// ValidateOTP consumes a one-time code and returns a reset token
func (c *AuthController) ValidateOTP(ctx *gin.Context) {
	var req dto.ValidateOTPRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	token, err := c.authService.ValidateOTP(ctx.Request.Context(), req.Email, req.Code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.VerifySecurityQuestionsResponse{ResetToken: token}))
}

// ListSecurityQuestions returns the question catalog
func (c *AuthController) ListSecurityQuestions(ctx *gin.Context) {
	questions, err := c.authService.ListSecurityQuestions(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(questions))
}

// SetSecurityQuestions stores three question/answer pairs for the caller
func (c *AuthController) SetSecurityQuestions(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.SetSecurityQuestionsRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	if err := c.authService.SetSecurityQuestions(ctx.Request.Context(), userID, req.Pairs); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Security questions saved"}))
}

// VerifySecurityQuestions checks answers and mints a reset token
func (c *AuthController) VerifySecurityQuestions(ctx *gin.Context) {
	var req dto.VerifySecurityQuestionsRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	token, err := c.authService.VerifySecurityQuestions(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.VerifySecurityQuestionsResponse{ResetToken: token}))
}

// ResetPassword completes a password reset with a token
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	if err := c.authService.ResetPassword(ctx.Request.Context(), req.Token, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Password reset"}))
}

// ChangePassword changes the password of the caller
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	if err := c.authService.ChangePassword(ctx.Request.Context(), userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Password changed"}))
}
