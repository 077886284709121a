package api

import (
	"net/http"
	"strconv"
	"time"

	"cafeteria/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// GetCart returns the session's cart lines.
func (s *Server) GetCart(c *gin.Context) {
	defer monitoring.ObserveStoreOp("cart", "get", time.Now())

	lines, err := s.session.Cart.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lines)
}

// AddToCart adds a menu item to the cart by id. The item's name and price
// are copied from the live catalog at this moment.
func (s *Server) AddToCart(c *gin.Context) {
	var req struct {
		ItemID int `json:"itemId"`
		Qty    int `json:"qty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	items, err := s.session.Catalog.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for _, item := range items {
		if item.ID != req.ItemID {
			continue
		}
		defer monitoring.ObserveStoreOp("cart", "add", time.Now())
		if err := s.session.Cart.Add(c.Request.Context(), item, req.Qty); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		lines, err := s.session.Cart.Get(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, lines)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
}

// SetCartQty overwrites a line's quantity; zero or less removes the line.
func (s *Server) SetCartQty(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req struct {
		Qty int `json:"qty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	defer monitoring.ObserveStoreOp("cart", "setQty", time.Now())
	if err := s.session.Cart.SetQty(c.Request.Context(), id, req.Qty); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	lines, err := s.session.Cart.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lines)
}

// ClearCart empties the cart.
func (s *Server) ClearCart(c *gin.Context) {
	defer monitoring.ObserveStoreOp("cart", "clear", time.Now())

	if err := s.session.Cart.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
