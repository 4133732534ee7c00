package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
	"github.com/mserebryaakov/aggregator-pim/internal/resource"
)

const (
	userKey      = "pim.user"
	bearerPrefix = "Bearer "
)

type credentials struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type jwtToken struct {
	IDToken string `json:"id_token"`
}

type Handler struct {
	service *Service
	log     *logrus.Entry
}

func NewHandler(service *Service, log *logrus.Entry) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// Register mounts the public authenticate endpoint.
func (h *Handler) Register(group *gin.RouterGroup) {
	group.POST("/authenticate", h.authenticate)
}

// RegisterAccount mounts the endpoints of the signed-in user. group must be
// guarded by Middleware.
func (h *Handler) RegisterAccount(group *gin.RouterGroup) {
	group.GET("/account", h.account)
	group.POST("/logout", h.logout)
}

func (h *Handler) authenticate(c *gin.Context) {
	var creds credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		resource.WriteError(c, http.StatusBadRequest, resource.CodeBadRequest, err.Error())
		return
	}

	token, err := h.service.Authenticate(c.Request.Context(), creds.Username, creds.Password, creds.RememberMe)
	if err != nil {
		h.unauthorized(c, err)
		return
	}

	h.log.Infof("user %s signed in", creds.Username)
	c.Header("Authorization", bearerPrefix+token)
	c.JSON(http.StatusOK, jwtToken{IDToken: token})
}

func (h *Handler) account(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		resource.WriteError(c, http.StatusUnauthorized, resource.CodeUnauthorized, errInvalidToken.Error())
		return
	}

	authorities := user.AuthorityList()
	if authorities == nil {
		authorities = []string{}
	}
	c.JSON(http.StatusOK, entity.Account{
		ID:          user.ID,
		Login:       user.Login,
		Activated:   user.Activated,
		Authorities: authorities,
	})
}

func (h *Handler) logout(c *gin.Context) {
	h.service.Logout(bearer(c))
	c.Status(http.StatusNoContent)
}

// Middleware rejects requests without a valid bearer token and stores the
// signed-in user on the context.
func (h *Handler) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			resource.WriteError(c, http.StatusUnauthorized, resource.CodeUnauthorized, "missing bearer token")
			return
		}

		user, err := h.service.UserByToken(c.Request.Context(), token)
		if err != nil {
			h.unauthorized(c, err)
			return
		}

		SetUser(c, user)
		c.Next()
	}
}

// RequireAuthority answers 403 unless the signed-in user holds one of the
// authorities.
func RequireAuthority(authorities ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			resource.WriteError(c, http.StatusUnauthorized, resource.CodeUnauthorized, errInvalidToken.Error())
			return
		}
		for _, a := range authorities {
			if user.HasAuthority(a) {
				c.Next()
				return
			}
		}
		resource.WriteError(c, http.StatusForbidden, resource.CodeForbidden, "access denied")
	}
}

// SetUser marks user as the caller of the request.
func SetUser(c *gin.Context, user *entity.User) {
	c.Set(userKey, user)
}

func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}

// BearerToken returns the raw Authorization header value for forwarding.
func BearerToken(c *gin.Context) string {
	return c.GetHeader("Authorization")
}

func (h *Handler) unauthorized(c *gin.Context, err error) {
	if errors.Is(err, errBadCredentials) || errors.Is(err, errUserNotActivated) || errors.Is(err, errInvalidToken) {
		resource.WriteError(c, http.StatusUnauthorized, resource.CodeUnauthorized, err.Error())
		return
	}
	resource.Fail(c, h.log, err)
}

func bearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
}
