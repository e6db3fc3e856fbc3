package handlers

import (
	"net/http"

	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/auth/register
func (a API) Register(c *gin.Context) {
	var req services.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}
	session, err := a.auth(c).Register(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, session)
}

// POST /api/auth/login
func (a API) Login(c *gin.Context) {
	var req services.LoginInput
	if !BindJSONOrError(c, &req) {
		return
	}
	session, err := a.auth(c).Login(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, session)
}

// GET /api/auth/me
func (a API) Me(c *gin.Context) {
	user, err := a.auth(c).Me(middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, user)
}

type promoteRequest struct {
	Secret string `json:"secret"`
	UserID int64  `json:"user_id"`
}

// POST /api/admin/promote-user
// Secret-guarded admin bootstrap; deliberately outside the auth middleware.
func (a API) PromoteUser(c *gin.Context) {
	var req promoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := a.auth(c).Promote(req.Secret, req.UserID); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondMessage(c, http.StatusOK, "user promoted to admin")
}
