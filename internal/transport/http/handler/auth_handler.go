package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pekarna-api/internal/domain"
	"pekarna-api/internal/service"
	resp "pekarna-api/internal/transport/http/response"
)

type AuthHandler struct {
	auth *service.Auth
	log  *zap.Logger

	// Invalidate is called after a successful registration so cached user
	// listings refresh. Nil when caching is off.
	Invalidate func(c *gin.Context)
}

func NewAuthHandler(auth *service.Auth, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

type registerIn struct {
	Name     string `json:"name"     binding:"required,max=64"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register. A taken email answers 400 and
// says nothing about the existing account. No token is issued on success.
func (h *AuthHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}

	_, err := h.auth.Register(in.Name, in.Email, in.Password)
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeEmailTaken, "E-mail už existuje."))
	case err != nil:
		h.log.Error("register", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
	default:
		if h.Invalidate != nil {
			h.Invalidate(c)
		}
		c.JSON(http.StatusOK, resp.Text("Registrace úspěšná!"))
	}
}

type loginIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginOut struct {
	Token string `json:"token"`
}

// Login handles POST /api/auth/login. Unknown email and wrong password get
// the identical 401 body.
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}

	token, err := h.auth.Login(in.Email, in.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, resp.Error(resp.CodeInvalidCredentials, "Špatné přihlašovací údaje."))
	case err != nil:
		h.log.Error("login", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
	default:
		c.JSON(http.StatusOK, loginOut{Token: token})
	}
}
