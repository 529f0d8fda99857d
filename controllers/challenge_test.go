package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitflow/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReceivedChallenges(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := setupMockDB(t)

	router := gin.New()
	router.GET("/auth/challenges/received", GetReceivedChallenges(db))

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "challenges" WHERE opponent_email = `).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "challenger_email", "challenger_name", "opponent_email", "room_id", "status", "exercise", "created_at"}).
			AddRow("ch-1", "bob@example.com", "Bob", "ana@example.com", "challenge_r1", "pending", "20 Pushups", now))

	token, err := middleware.GenerateToken("ana@example.com")
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/auth/challenges/received", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	require.Len(t, response, 1)
	assert.Equal(t, "bob@example.com", response[0]["challenger_email"])
	assert.Equal(t, "pending", response[0]["status"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReceivedChallengesRequiresToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, _ := setupMockDB(t)

	router := gin.New()
	router.GET("/auth/challenges/received", GetReceivedChallenges(db))

	req, _ := http.NewRequest("GET", "/auth/challenges/received", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetChallengeHistory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := setupMockDB(t)

	router := gin.New()
	router.GET("/auth/challenges/history", GetChallengeHistory(db))

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "challenges" WHERE challenger_email = `).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "challenger_email", "opponent_email", "status", "winner_email", "created_at"}).
			AddRow("ch-2", "ana@example.com", "bob@example.com", "completed", "ana@example.com", now).
			AddRow("ch-1", "bob@example.com", "ana@example.com", "declined", "", now.Add(-time.Hour)))

	token, err := middleware.GenerateToken("ana@example.com")
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/auth/challenges/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	require.Len(t, response, 2)
	assert.Equal(t, "completed", response[0]["status"])
	assert.Equal(t, "ana@example.com", response[0]["winner_email"])

	assert.NoError(t, mock.ExpectationsWereMet())
}
