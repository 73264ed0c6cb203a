package mockapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/evlive/admin-console/internal/models"
	"github.com/evlive/admin-console/pkg/config"
	"github.com/evlive/admin-console/pkg/errors"
	"github.com/evlive/admin-console/pkg/logger"
	"github.com/evlive/admin-console/pkg/middleware/cors"
	"github.com/evlive/admin-console/pkg/middleware/requestid"
	"github.com/evlive/admin-console/pkg/response"
)

const contextSubject = "mockapi.subject"

// Fixture credentials and signing key. This server exists for local
// development and CI, never production.
const (
	seedAdminEmail    = "admin@evlive.dev"
	seedAdminPassword = "admin"
	signingSecret     = "mockapi-local-secret"
	tokenLifetime     = 12 * time.Hour
)

// Router assembles the fixture API over a seeded store.
func Router(store *Store, cfg *config.Config, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(logger.GinMiddleware(log))
	router.Use(cors.New(cfg.MockAPI.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	admin := router.Group("/admin")
	admin.POST("/auth/login", login)

	authed := admin.Group("")
	authed.Use(requireToken())

	events := NewEventHandler(store)
	authed.GET("/events", events.List)
	authed.POST("/events", events.Create)
	authed.GET("/events/:id", events.Get)
	authed.PUT("/events/:id", events.Update)
	authed.POST("/events/:id/approve", events.Approve)
	authed.POST("/events/:id/reject", events.Reject)
	authed.POST("/events/:id/unpublish", events.Unpublish)
	authed.POST("/events/:id/stream/start", events.StartStream)
	authed.POST("/events/:id/stream/end", events.EndStream)

	for _, group := range []struct {
		base string
		role models.AccountRole
	}{
		{"/users", models.RoleUser},
		{"/admins", models.RoleAdmin},
		{"/organisers", models.RoleOrganiser},
	} {
		handler := NewAccountHandler(store, group.role)
		authed.GET(group.base, handler.List)
		authed.GET(group.base+"/:id", handler.Get)
		authed.POST(group.base+"/:id/lock", handler.Lock)
		authed.POST(group.base+"/:id/unlock", handler.Unlock)
		authed.POST(group.base+"/:id/activate", handler.Activate)
		authed.POST(group.base+"/:id/deactivate", handler.Deactivate)
	}

	transactions := NewTransactionHandler(store)
	authed.GET("/transactions", transactions.List)
	authed.GET("/transactions/:id", transactions.Get)
	authed.POST("/transactions/:id/refund", transactions.Refund)

	locations := NewLocationHandler(store)
	authed.GET("/locations", locations.List)
	authed.POST("/locations", locations.Create)
	authed.DELETE("/locations/:id", locations.Delete)

	activities := NewActivityHandler(store)
	authed.GET("/activities", activities.List)

	support := NewSupportHandler(store)
	authed.GET("/support", support.List)
	authed.GET("/support/:id", support.Get)
	authed.POST("/support/:id/resolve", support.Resolve)
	authed.POST("/support/:id/close", support.Close)

	stats := NewStatsHandler(store)
	authed.GET("/stats", stats.Get)

	return router
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, errors.Clone(errors.ErrValidation, "email and password are required"))
		return
	}
	if body.Email != seedAdminEmail || body.Password != seedAdminPassword {
		response.Error(c, errors.Clone(errors.ErrUnauthorized, "invalid credentials"))
		return
	}

	claims := jwt.RegisteredClaims{
		Subject:   body.Email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingSecret))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed in", "token": token})
}

// requireToken rejects requests without a valid bearer token.
func requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return []byte(signingSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Set(contextSubject, claims.Subject)
		c.Next()
	}
}
