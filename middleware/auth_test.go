package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	token, err := GenerateToken("ana@example.com")
	require.NoError(t, err)

	email, err := parseToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", email)

	// Raw token without the Bearer prefix works too.
	email, err = parseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", email)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := parseToken("Bearer not-a-jwt")
	assert.Error(t, err)
}

func TestSocketioJWTDecoder(t *testing.T) {
	token, err := GenerateToken("ana@example.com")
	require.NoError(t, err)

	email, err := Socketio_JWT_decoder(map[string]interface{}{
		"authorization": "Bearer " + token,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", email)

	_, err = Socketio_JWT_decoder(map[string]interface{}{})
	assert.Error(t, err)
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/auth/echo", AuthRequired, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	// No token
	req, _ := http.NewRequest("GET", "/auth/echo", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token
	token, err := GenerateToken("ana@example.com")
	require.NoError(t, err)
	req, _ = http.NewRequest("GET", "/auth/echo", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
