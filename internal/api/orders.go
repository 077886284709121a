package api

import (
	"net/http"
	"strconv"
	"time"

	"cafeteria/internal/models"
	"cafeteria/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// Checkout runs the simulated payment and places an order from the current
// cart and identity. The cart is cleared only when placement succeeds.
func (s *Server) Checkout(c *gin.Context) {
	ctx := c.Request.Context()

	user, found, err := s.session.Identity.Current(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	lines, err := s.session.Cart.Get(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}

	total := 0.0
	for _, line := range lines {
		total += line.LineTotal()
	}

	receipt, err := s.payments.Process(ctx, total)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	defer monitoring.ObserveStoreOp("orders", "place", time.Now())
	order, ok, err := s.session.Orders.PlaceOrder(ctx, user, lines)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order could not be placed"})
		return
	}

	monitoring.OrdersPlaced.Inc()
	monitoring.OrderTotals.Observe(order.Total)
	c.JSON(http.StatusCreated, gin.H{"order": order, "payment": receipt})
}

// ListOrders returns all orders for staff and admin, and the caller's own
// orders for students.
func (s *Server) ListOrders(c *gin.Context) {
	defer monitoring.ObserveStoreOp("orders", "list", time.Now())

	claims := currentClaims(c)
	var (
		orders []models.Order
		err    error
	)
	if claims.Role == roleStudent {
		orders, err = s.session.Orders.ListByPurchaser(c.Request.Context(), claims.RollNo)
	} else {
		orders, err = s.session.Orders.ListAll(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns a single order by id. Students may only fetch their own.
func (s *Server) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, found, err := s.session.Orders.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	claims := currentClaims(c)
	if !found || (claims.Role == roleStudent && order.User.RollNo != claims.RollNo) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus advances an order through the fulfilment workflow. The
// ledger itself accepts any overwrite; this handler is where the adjacency
// graph is enforced: Pending may be accepted or rejected, everything else
// only moves to its forward step, and re-sending the current status is an
// idempotent success.
func (s *Server) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status"})
		return
	}

	order, found, err := s.session.Orders.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	if !transitionAllowed(order.Status, req.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "cannot move order from " + string(order.Status) + " to " + string(req.Status),
		})
		return
	}

	defer monitoring.ObserveStoreOp("orders", "updateStatus", time.Now())
	ok, err := s.session.Orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	monitoring.StatusTransitions.WithLabelValues(string(req.Status)).Inc()
	c.JSON(http.StatusOK, gin.H{"message": "order status updated"})
}

func transitionAllowed(current, next models.OrderStatus) bool {
	if next == current {
		return true
	}
	if current == models.OrderStatusPending && next == models.OrderStatusRejected {
		return true
	}
	step, ok := current.Next()
	return ok && next == step
}
