package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "fitflow-dev-secret"
	}
	return []byte(secret)
}

// GenerateToken issues the JWT handed out at login. The email claim is the only
// thing the rest of the backend reads from it.
func GenerateToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(72 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func parseToken(tokenString string) (string, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("token has no email claim")
	}
	return email, nil
}

// JWT_decoder extracts the authenticated email from the Authorization header.
// Aborts the request with 401 when the token is missing or invalid.
func JWT_decoder(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header"})
		return "", errors.New("missing authorization header")
	}
	email, err := parseToken(header)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return "", err
	}
	return email, nil
}

// Socketio_JWT_decoder extracts the authenticated email from a socket.io
// handshake auth map ({"authorization": "Bearer <jwt>"}).
func Socketio_JWT_decoder(authData map[string]interface{}) (string, error) {
	token, ok := authData["authorization"].(string)
	if !ok || token == "" {
		return "", errors.New("missing authorization token")
	}
	return parseToken(token)
}

// AuthRequired guards the /auth route group.
func AuthRequired(c *gin.Context) {
	if _, err := JWT_decoder(c); err != nil {
		return
	}
	c.Next()
}
