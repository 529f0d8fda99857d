package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gormDB, mock
}

func TestGetUserPublicInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := setupMockDB(t)

	router := gin.New()
	router.GET("/users/:email", GetUserPublicInfo(db))

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = `).
		WillReturnRows(sqlmock.NewRows([]string{"email", "full_name", "goal", "place"}).
			AddRow("ana@example.com", "Ana Garcia", "Get Fit", "Madrid"))

	req, _ := http.NewRequest("GET", "/users/Ana@Example.com", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "ana@example.com", response["email"])
	assert.Equal(t, "Ana Garcia", response["full_name"])
	assert.Equal(t, "Get Fit", response["goal"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserPublicInfoNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := setupMockDB(t)

	router := gin.New()
	router.GET("/users/:email", GetUserPublicInfo(db))

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = `).
		WillReturnRows(sqlmock.NewRows([]string{"email"}))

	req, _ := http.NewRequest("GET", "/users/nobody@example.com", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignUpDuplicateEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := setupMockDB(t)

	router := gin.New()
	router.POST("/signup", SignUp(db))

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = `).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("ana@example.com"))

	body := `{"email":"ana@example.com","full_name":"Ana Garcia","password":"secret123"}`
	req, _ := http.NewRequest("POST", "/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignUpRejectsEmptyFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, _ := setupMockDB(t)

	router := gin.New()
	router.POST("/signup", SignUp(db))

	body := `{"email":"ana@example.com","full_name":"","password":"secret123"}`
	req, _ := http.NewRequest("POST", "/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
