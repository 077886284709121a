// Package api exposes the cafeteria stores over HTTP. Handlers own the
// field-level validation the stores deliberately skip, and translate the
// stores' explicit false results into 4xx responses.
package api

import (
	"net/http"

	"cafeteria/internal/payment"
	"cafeteria/internal/session"

	"github.com/gin-gonic/gin"
)

// Server is the HTTP surface over one cafeteria session.
type Server struct {
	router     *gin.Engine
	session    *session.Session
	payments   *payment.Simulator
	feed       *Feed
	signingKey []byte
}

// NewServer wires the router over the given session. feed may be nil when no
// order feed is running.
func NewServer(sess *session.Session, payments *payment.Simulator, feed *Feed, signingKey string) *Server {
	s := &Server{
		router:     gin.Default(),
		session:    sess,
		payments:   payments,
		feed:       feed,
		signingKey: []byte(signingKey),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints.
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "cafeteria API is running"})
	})

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/auth/login", s.Login)
		v1.POST("/auth/logout", s.authRequired(), s.Logout)
		v1.GET("/auth/me", s.authRequired(), s.CurrentUser)

		// Menu browsing is open to every signed-in role; curation is
		// admin-only.
		v1.GET("/menu", s.authRequired(), s.ListMenu)
		v1.POST("/menu", s.roleRequired(roleAdmin), s.AddMenuItem)
		v1.PUT("/menu/:id", s.roleRequired(roleAdmin), s.UpdateMenuItem)
		v1.DELETE("/menu/:id", s.roleRequired(roleAdmin), s.DeleteMenuItem)

		v1.GET("/cart", s.roleRequired(roleStudent), s.GetCart)
		v1.POST("/cart", s.roleRequired(roleStudent), s.AddToCart)
		v1.PUT("/cart/:id", s.roleRequired(roleStudent), s.SetCartQty)
		v1.DELETE("/cart", s.roleRequired(roleStudent), s.ClearCart)

		v1.POST("/orders", s.roleRequired(roleStudent), s.Checkout)
		v1.GET("/orders", s.authRequired(), s.ListOrders)
		v1.GET("/orders/:id", s.authRequired(), s.GetOrder)
		v1.PUT("/orders/:id/status", s.roleRequired(roleStaff, roleAdmin), s.UpdateOrderStatus)
	}

	s.router.GET("/ws/orders", s.roleRequired(roleStaff, roleAdmin), s.OrderFeed)
}

// Router returns the gin router, mainly for tests and the HTTP server.
func (s *Server) Router() *gin.Engine {
	return s.router
}
