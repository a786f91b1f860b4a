// Package mockapi is a self-contained fixture backend implementing the
// booking REST contract. It backs the demo CLI during development and
// the client integration tests, which mount its engine on httptest.
package mockapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/dentabook/booking-client/internal/model"
	"github.com/dentabook/booking-client/pkg/auth"
	"github.com/dentabook/booking-client/pkg/logger"
)

type Config struct {
	JWTSecret   string
	TokenExpiry time.Duration
	RateLimit   RateLimitConfig
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type account struct {
	user         model.User
	passwordHash []byte
}

// Server holds the fixture data set behind the REST contract. All
// state is in-memory; restarting resets it.
type Server struct {
	mu           sync.Mutex
	offices      map[string]model.Office
	dentists     map[string]model.Dentist
	appointments map[string]model.Appointment
	accounts     map[string]*account // keyed by email

	tokens  auth.TokenService
	limiter *rate.Limiter
	log     *logger.Logger
}

func NewServer(cfg Config, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	secret := cfg.JWTSecret
	if secret == "" {
		secret = "mockapi-dev-secret"
	}

	s := &Server{
		offices:      make(map[string]model.Office),
		dentists:     make(map[string]model.Dentist),
		appointments: make(map[string]model.Appointment),
		accounts:     make(map[string]*account),
		tokens:       auth.NewJWTService(secret, cfg.TokenExpiry),
		log:          log.WithComponent("mockapi"),
	}
	if cfg.RateLimit.Enabled {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	}
	s.seed()
	return s
}

// Engine builds the gin engine with all routes mounted.
func (s *Server) Engine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	if s.limiter != nil {
		r.Use(s.rateLimit())
	}

	r.GET("/dental-offices", s.listOffices)
	r.GET("/dental-offices/:id", s.getOffice)
	r.GET("/dentists", s.listDentists)
	r.GET("/dentists/:id", s.getDentist)

	r.POST("/auth/login", s.login)
	r.POST("/auth/signup", s.signup)

	r.POST("/appointments", s.createAppointment)
	r.PUT("/appointments/reschedule/:id", s.rescheduleAppointment)

	authed := r.Group("/", s.requireAuth())
	authed.GET("/appointments/user/:userId", s.listUserAppointments)
	authed.DELETE("/appointments/cancel/:id", s.cancelAppointment)

	return r
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

const ctxUserID = "mockapi.userID"

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := s.tokens.Validate(header[len(prefix):])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Next()
	}
}
