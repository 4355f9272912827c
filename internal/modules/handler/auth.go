package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marconi-lab/annotator/internal/config"
	"github.com/marconi-lab/annotator/internal/middleware"
	"github.com/marconi-lab/annotator/internal/modules/serializer"
	"github.com/marconi-lab/annotator/internal/modules/service"
)

type AuthHandler struct {
	svc service.AuthService
	cfg *config.Config
}

func NewAuthHandler(s service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: s, cfg: cfg}
}

type RegisterReq struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Username    string `json:"username" binding:"required"`
	IsAdmin     bool   `json:"is_admin"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Street      string `json:"street"`
	Description string `json:"description"`
	Experience  string `json:"experience"`
	Site        string `json:"site"`
}

// Register godoc
//
//	@Summary		Register a new account
//	@Description	Create an unverified account and send a verification email
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body	RegisterReq	true	"Registration payload"
//	@Success		201	{object}	map[string]string
//	@Failure		400	{object}	serializer.Response
//	@Failure		409	{object}	serializer.Response
//	@Router			/auth/register/ [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	_, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Username:    req.Username,
		IsAdmin:     req.IsAdmin,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Age:         req.Age,
		Gender:      req.Gender,
		Country:     req.Country,
		City:        req.City,
		Street:      req.Street,
		Description: req.Description,
		Experience:  req.Experience,
		Site:        req.Site,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, serializer.ConflictErr("An account with this email already exists"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "You registered successfully."})
}

// ConfirmEmail godoc
//
//	@Summary		Confirm an email address
//	@Description	Validate a verification token and redirect to the front-end
//	@Tags			auth
//	@Param			token	path	string	true	"Verification token"
//	@Success		302
//	@Failure		401	{object}	serializer.Response
//	@Router			/confirm/{token} [get]
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	outcome, err := h.svc.VerifyEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("Invalid or expired verification link"))
		return
	}

	target := h.cfg.Mail.FrontendLogin
	if outcome == service.VerifyRedirectSignup {
		target = h.cfg.Mail.FrontendSign
	}
	c.Redirect(http.StatusFound, target)
}

type LoginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchange credentials for a bearer access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body	LoginReq	true	"Credentials"
//	@Success		200	{object}	map[string]any
//	@Failure		401	{object}	serializer.Response
//	@Router			/auth/login/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, serializer.AuthErr("Invalid email or password, Please try again"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "You logged in successfully.",
		"access_token": out.AccessToken,
		"is_admin":     out.User.IsAdmin,
		"id":           out.User.ID,
		"username":     out.User.Username,
		"email":        out.User.Email,
	})
}

// Logout godoc
//
//	@Summary		Log out
//	@Description	Blacklist the presented access token for its remaining lifetime
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	map[string]string
//	@Failure		401	{object}	serializer.Response
//	@Router			/auth/logout/ [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	raw := c.GetString(middleware.CtxRawTok)
	if raw == "" {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
		return
	}

	if err := h.svc.Logout(c.Request.Context(), raw); err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			c.JSON(http.StatusUnauthorized, serializer.AuthErr("Unauthorized"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You logged out successfully."})
}

type PasswordResetReq struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestPasswordReset godoc
//
//	@Summary		Request a password reset
//	@Description	Email a short-lived reset link to a known account
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body	PasswordResetReq	true	"Account email"
//	@Success		201	{object}	map[string]string
//	@Failure		400	{object}	serializer.Response
//	@Router			/password-reset/ [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrUnknownEmail) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("Email is not associated with any account", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Password reset email sent."})
}

type NewPasswordReq struct {
	Password string `json:"password" binding:"required,min=6"`
}

// SetNewPassword godoc
//
//	@Summary		Set a new password
//	@Description	Consume a reset token and store the new password
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			token	path	string	true	"Reset token"
//	@Param			body	body	NewPasswordReq	true	"New password"
//	@Success		200	{object}	map[string]string
//	@Failure		401	{object}	serializer.Response
//	@Router			/new-password/{token} [post]
func (h *AuthHandler) SetNewPassword(c *gin.Context) {
	var req NewPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.SetNewPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			c.JSON(http.StatusUnauthorized, serializer.AuthErr("Invalid or expired reset link"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated."})
}
