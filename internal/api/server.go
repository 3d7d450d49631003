package api

import (
	"github.com/gin-gonic/gin"

	"github.com/propstack/lease-rate-api/internal/domain"
	"github.com/propstack/lease-rate-api/internal/middleware"
	"github.com/propstack/lease-rate-api/internal/service"
	"github.com/propstack/lease-rate-api/internal/service/pubsub"
	"github.com/propstack/lease-rate-api/pkg/logger"
)

type Server struct {
	rateChange *RateChangeHandler
	leaseUnit  *LeaseUnitHandler
	websocket  *WebSocketHandler
	auth       *middleware.AuthMiddleware
	rateLimit  *middleware.RateLimitMiddleware
	validation *middleware.ValidationMiddleware
}

func NewServer(
	rateChangeService *service.RateChangeService,
	auth *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	validation *middleware.ValidationMiddleware,
	logger *logger.Logger,
	pubsub *pubsub.RedisPubSub,
) *Server {
	return &Server{
		rateChange: NewRateChangeHandler(rateChangeService),
		leaseUnit:  NewLeaseUnitHandler(rateChangeService),
		websocket:  NewWebSocketHandler(logger, pubsub),
		auth:       auth,
		rateLimit:  rateLimit,
		validation: validation,
	}
}

func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	// Apply security middleware first
	api.Use(s.validation.BlockSuspiciousPatterns())
	api.Use(s.validation.SanitizeInput())
	api.Use(s.validation.ValidateRequestSize(1 * 1024 * 1024)) // 1MB max
	api.Use(s.validation.ValidateContentType("application/json", "text/plain"))

	// Apply global rate limiting
	api.Use(s.rateLimit.GlobalRateLimit(10000)) // 10k requests per minute per IP

	{
		rateChanges := api.Group("/rate-changes", s.auth.JWTAuth(), s.rateLimit.ActorRateLimit())
		{
			rateChanges.POST("", s.auth.RequireAnyRole(domain.RoleAgent, domain.RoleAdmin), s.rateChange.CreateRequest)
			rateChanges.GET("", s.rateChange.ListRequests)
			rateChanges.GET("/:id", s.rateChange.GetRequest)
			rateChanges.POST("/:id/recommend", s.auth.RequireAnyRole(domain.RoleReviewer, domain.RoleAdmin), s.rateChange.Recommend)
			rateChanges.POST("/:id/approve", s.auth.RequireAnyRole(domain.RoleApprover, domain.RoleAdmin), s.rateChange.Approve)
			rateChanges.POST("/:id/reject", s.auth.RequireAnyRole(domain.RoleReviewer, domain.RoleApprover, domain.RoleAdmin), s.rateChange.Reject)
		}

		leaseUnits := api.Group("/lease-units", s.auth.JWTAuth(), s.rateLimit.ActorRateLimit())
		{
			leaseUnits.GET("/:id", s.leaseUnit.GetLeaseUnit)
			leaseUnits.GET("/:id/history", s.leaseUnit.History)
			leaseUnits.GET("/:id/history/export", s.leaseUnit.ExportHistory)
		}

		leases := api.Group("/leases", s.auth.JWTAuth())
		{
			leases.GET("/:id/stream", s.websocket.HandleWebSocket)
		}
	}
}

// StartWebSocketHub starts the WebSocket hub for broadcasting rate changes
func (s *Server) StartWebSocketHub() {
	go s.websocket.Start()
}

// GetWebSocketHandler returns the WebSocket handler for wiring up broadcasting
func (s *Server) GetWebSocketHandler() *WebSocketHandler {
	return s.websocket
}
