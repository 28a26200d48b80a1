package controllers

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-cropadvisor/config"
	"go-cropadvisor/middleware"
)

var testJWT = config.JWTConfig{Secret: "test-secret", TTL: time.Hour}

func newAuthRouter(c *AuthController) *gin.Engine {
	r := gin.New()
	r.POST("/register", c.Register)
	r.POST("/login", c.Login)
	return r
}

type tokenResponse struct {
	Code int `json:"code"`
	Data struct {
		Token  string `json:"token"`
		UserID int    `json:"userId"`
	} `json:"data"`
}

func parseToken(t *testing.T, token string) *middleware.Claims {
	t.Helper()
	claims := &middleware.Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWT.Secret), nil
	})
	require.NoError(t, err)
	return claims
}

func TestRegister(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE username = ?")).
		WithArgs("farmer01").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO users").
		WithArgs("farmer01", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(9, 1))

	c := NewAuthController(db, testJWT, zap.NewNop())
	w := doJSON(t, newAuthRouter(c), http.MethodPost, "/register",
		map[string]string{"username": "farmer01", "password": "s3cret-pass"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp tokenResponse
	decode(t, w, &resp)
	assert.Equal(t, 9, resp.Data.UserID)
	assert.Equal(t, 9, parseToken(t, resp.Data.Token).UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	c := NewAuthController(db, testJWT, zap.NewNop())
	w := doJSON(t, newAuthRouter(c), http.MethodPost, "/register",
		map[string]string{"username": "farmer01", "password": "s3cret-pass"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	c := NewAuthController(nil, testJWT, zap.NewNop())
	w := doJSON(t, newAuthRouter(c), http.MethodPost, "/register", map[string]string{"username": "x"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	c = NewAuthController(db, testJWT, zap.NewNop())
	w = doJSON(t, newAuthRouter(c), http.MethodPost, "/register", map[string]string{"username": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userQuery := regexp.QuoteMeta("SELECT id, password_hash FROM users WHERE username = ?")
	mock.ExpectQuery(userQuery).WithArgs("farmer01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow(3, string(hash)))
	mock.ExpectQuery(userQuery).WithArgs("farmer01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}).AddRow(3, string(hash)))
	mock.ExpectQuery(userQuery).WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash"}))

	r := newAuthRouter(NewAuthController(db, testJWT, zap.NewNop()))

	w := doJSON(t, r, http.MethodPost, "/login", map[string]string{"username": "farmer01", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp tokenResponse
	decode(t, w, &resp)
	assert.Equal(t, 3, parseToken(t, resp.Data.Token).UserID)

	w = doJSON(t, r, http.MethodPost, "/login", map[string]string{"username": "farmer01", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", map[string]string{"username": "nobody", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}
