package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/procurehub/procurehub/internal/application/service"
	"github.com/procurehub/procurehub/internal/domain/entity"
)

// LoginRequest is the login payload
type LoginRequest struct {
	EmployeeNumber string `json:"employee_number" binding:"required"`
	Password       string `json:"password" binding:"required"`
}

// SignupRequest is the account creation payload
type SignupRequest struct {
	EmployeeNumber string `json:"employee_number" binding:"required"`
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Password       string `json:"password" binding:"required"`
	Department     string `json:"department"`
	Location       string `json:"location"`
	Role           string `json:"role"`
}

// ForgotPasswordRequest carries the email and replacement password
type ForgotPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// AuthResponse is returned on successful login or signup
type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// Login handles POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "employee_number and password are required")
		return
	}

	token, user, err := h.services.Auth.Login(c.Request.Context(), req.EmployeeNumber, req.Password)
	if err != nil {
		// Credential failures always read the same to the client
		c.JSON(http.StatusUnauthorized, Response{
			Success: false,
			Error:   "invalid credentials",
		})
		return
	}

	h.respondOK(c, AuthResponse{Token: token, User: user})
}

// Signup handles POST /api/auth/signup
func (h *Handlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "invalid signup payload")
		return
	}

	role := entity.Role(req.Role)
	if req.Role == "" {
		role = entity.RoleRequester
	}

	token, user, err := h.services.Auth.Signup(c.Request.Context(), service.SignupInput{
		EmployeeNumber: req.EmployeeNumber,
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		Department:     req.Department,
		Location:       req.Location,
		Role:           role,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondCreated(c, AuthResponse{Token: token, User: user})
}

// GetCurrentUser handles GET /api/auth/user, returning the account behind the
// presented token so the client can restore a session.
func (h *Handlers) GetCurrentUser(c *gin.Context) {
	user, err := h.services.Auth.CurrentUser(c.Request.Context(), actorFrom(c).UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, user)
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so this only
// exists for the client to have a definite end-of-session call.
func (h *Handlers) Logout(c *gin.Context) {
	h.respondOK(c, gin.H{"message": "logged out"})
}

// ForgotPassword handles POST /api/auth/forgot-password
func (h *Handlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "email and new_password are required")
		return
	}

	if err := h.services.Auth.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, gin.H{"message": "password updated"})
}
