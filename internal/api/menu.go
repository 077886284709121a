package api

import (
	"net/http"
	"strconv"
	"time"

	"cafeteria/internal/catalog"
	"cafeteria/internal/models"
	"cafeteria/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// ListMenu returns the full catalog.
func (s *Server) ListMenu(c *gin.Context) {
	defer monitoring.ObserveStoreOp("menu", "list", time.Now())

	items, err := s.session.Catalog.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddMenuItem validates and adds a catalog item. Validation happens here;
// the catalog store trusts its input.
func (s *Server) AddMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := models.ValidateMenuItem(item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	defer monitoring.ObserveStoreOp("menu", "add", time.Now())
	created, err := s.session.Catalog.Add(c.Request.Context(), item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateMenuItem merges a partial update into an existing item.
func (s *Server) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var patch catalog.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.Name != nil && *patch.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu item name is required"})
		return
	}
	if patch.Price != nil && *patch.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu item price must be greater than 0"})
		return
	}

	defer monitoring.ObserveStoreOp("menu", "update", time.Now())
	ok, err := s.session.Catalog.Update(c.Request.Context(), id, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu item updated"})
}

// DeleteMenuItem removes an item from the catalog.
func (s *Server) DeleteMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	defer monitoring.ObserveStoreOp("menu", "remove", time.Now())
	ok, err := s.session.Catalog.Remove(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu item deleted"})
}
