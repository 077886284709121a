package api

import (
	"net/http"
	"strings"
	"time"

	"cafeteria/internal/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

const (
	roleAdmin   = string(models.RoleAdmin)
	roleStaff   = string(models.RoleStaff)
	roleStudent = string(models.RoleStudent)

	claimsKey = "claims"
)

// Claims is the session token payload: the client-trusted role flag plus the
// student attribution fields. There is no password behind it.
type Claims struct {
	Role   string `json:"role"`
	RollNo string `json:"rollNo,omitempty"`
	Mobile string `json:"mobile,omitempty"`
	jwt.StandardClaims
}

func (s *Server) mintToken(user models.User) (string, error) {
	claims := Claims{
		Role:   string(user.Role),
		RollNo: user.RollNo,
		Mobile: user.Mobile,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signingKey)
}

func (s *Server) parseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// authenticate resolves the session token, stashing the claims in the
// request context. It aborts the request and returns nil when the token is
// missing or invalid.
func (s *Server) authenticate(c *gin.Context) *Claims {
	header := c.GetHeader("Authorization")
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == "" || raw == header {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return nil
	}
	claims, err := s.parseToken(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil
	}
	c.Set(claimsKey, claims)
	return claims
}

// authRequired rejects requests without a valid session token.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.authenticate(c)
	}
}

// roleRequired gates a route to the given roles.
func (s *Server) roleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := s.authenticate(c)
		if claims == nil {
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden for role " + claims.Role})
	}
}

func currentClaims(c *gin.Context) *Claims {
	v, _ := c.Get(claimsKey)
	claims, _ := v.(*Claims)
	return claims
}

// Login validates the submitted identity, persists it for the session, and
// issues a session token.
func (s *Server) Login(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := s.session.Identity.Login(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login details for role"})
		return
	}

	token, err := s.mintToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout clears the session identity.
func (s *Server) Logout(c *gin.Context) {
	if err := s.session.Teardown(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// CurrentUser returns the active session identity.
func (s *Server) CurrentUser(c *gin.Context) {
	user, found, err := s.session.Identity.Current(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusOK, user)
}
