package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pekarna-api/internal/core/cache"
	"pekarna-api/internal/domain"
	"pekarna-api/internal/service"
	resp "pekarna-api/internal/transport/http/response"
)

const userListCacheKey = "users:list"

type UserHandler struct {
	auth  *service.Auth
	cache *cache.Cache // nil when redis is not configured
	log   *zap.Logger
}

func NewUserHandler(auth *service.Auth, c *cache.Cache, log *zap.Logger) *UserHandler {
	return &UserHandler{auth: auth, cache: c, log: log}
}

// List handles GET /api/users. The result only ever contains the public
// projection, so password hashes cannot appear regardless of caching.
func (h *UserHandler) List(c *gin.Context) {
	load := func(context.Context) ([]domain.PublicUser, error) {
		return h.auth.ListUsers()
	}

	var (
		users []domain.PublicUser
		err   error
	)
	if h.cache != nil {
		users, err = cache.GetOrLoadJSON(h.cache, c.Request.Context(), userListCacheKey, 30*time.Second, load)
	} else {
		users, err = load(c.Request.Context())
	}
	if err != nil {
		h.log.Error("list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
		return
	}
	if users == nil {
		users = []domain.PublicUser{}
	}
	c.JSON(http.StatusOK, users)
}

// InvalidateList drops the cached listing after a write.
func (h *UserHandler) InvalidateList(c *gin.Context) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), userListCacheKey)
	}
}
