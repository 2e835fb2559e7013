package handler

import (
	identityapp "github.com/ecommerce/backend/internal/application/identity"
	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/ecommerce/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles user and authentication endpoints
type UserHandler struct {
	BaseHandler
	users *identityapp.UserService
	auth  *identityapp.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *identityapp.UserService, auth *identityapp.AuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{logger: logger},
		users:       users,
		auth:        auth,
	}
}

// Register godoc
// @ID           registerUser
// @Summary      Register a user
// @Description  Creates an account. Email must be unique, even among deactivated users.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.RegisterRequest true "Registration data"
// @Success      201 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      400 {object} dto.Response
// @Router       /api/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}
	user, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "User created successfully", user)
}

// Login godoc
// @ID           loginUser
// @Summary      Log in
// @Description  Exchanges credentials for a bearer token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LoginRequest true "Credentials"
// @Success      200 {object} dto.Response{data=identityapp.LoginResult}
// @Failure      400 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Failure      429 {object} dto.Response
// @Router       /api/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessMessage(c, "Login successful", result)
}

// List godoc
// @ID           listUsers
// @Summary      List users
// @Description  Active users, newest first
// @Tags         users
// @Produce      json
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(10) maximum(100)
// @Success      200 {object} dto.Response{data=[]identityapp.UserResponse}
// @Router       /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, err := h.users.List(c.Request.Context(), pageRequest(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Me godoc
// @ID           getCurrentUser
// @Summary      Current user
// @Description  Profile of the authenticated user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      401 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID := middleware.GetJWTUserID(c)
	if userID == "" {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// GetByID godoc
// @ID           getUser
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      404 {object} dto.Response
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Update godoc
// @ID           updateUser
// @Summary      Update a user
// @Description  Partial update. A password in the body is ignored; use change-password.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path string                         true "User ID"
// @Param        request body identityapp.UpdateUserRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req identityapp.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}
	user, err := h.users.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessMessage(c, "User updated successfully", user)
}

// Delete godoc
// @ID           deleteUser
// @Summary      Deactivate a user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessMessage(c, "User deleted successfully", nil)
}

// ChangePassword godoc
// @ID           changeUserPassword
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path string                              true "User ID"
// @Param        request body identityapp.ChangePasswordRequest true "Current and new password"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /api/users/{id}/change-password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req identityapp.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := h.users.ChangePassword(c.Request.Context(), c.Param("id"), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessMessage(c, "Password changed successfully", nil)
}
