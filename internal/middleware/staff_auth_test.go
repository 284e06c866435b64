package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzlecollector/LinkPepper/internal/dto"
	"github.com/puzzlecollector/LinkPepper/internal/model"
	"github.com/puzzlecollector/LinkPepper/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testJWTSecret = "middleware-test-secret"

func newTestStaffAuthService() *service.StaffAuthService {
	// 中间件只用 ValidateToken, 不触库, 仓储传 nil 即可
	return service.NewStaffAuthService(nil, nil, testJWTSecret, 1)
}

// signStaffToken 直接签发测试 token
func signStaffToken(t *testing.T, secret string, role model.Role, expiresAt time.Time) string {
	claims := &service.StaffClaims{
		AdminID:     7,
		Username:    "tester",
		Role:        role,
		Permissions: model.RolePermissions[role],
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func staffTestRouter(extra ...gin.HandlerFunc) *gin.Engine {
	m := NewStaffAuthMiddleware(newTestStaffAuthService())
	r := gin.New()
	handlers := append([]gin.HandlerFunc{m.Required()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		claims := GetStaffClaims(c)
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	r.GET("/test", handlers...)
	return r
}

func doStaffRequest(t *testing.T, r *gin.Engine, authHeader string) (*httptest.ResponseRecorder, *dto.Response) {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/test", nil)
	require.NoError(t, err)
	if authHeader != "" {
		req.Header.Set(AuthHeader, authHeader)
	}
	r.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, &resp
}

func TestStaffAuth_MissingHeader(t *testing.T) {
	w, resp := doStaffRequest(t, staffTestRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrStaffUnauthorized.Code, resp.Code)
}

func TestStaffAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Basic abc", "Bearer", "token-without-scheme"} {
		w, resp := doStaffRequest(t, staffTestRouter(), header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Equal(t, dto.ErrStaffUnauthorized.Code, resp.Code)
	}
}

func TestStaffAuth_ValidToken(t *testing.T) {
	token := signStaffToken(t, testJWTSecret, model.RoleOperator, time.Now().Add(time.Hour))
	w, _ := doStaffRequest(t, staffTestRouter(), BearerPrefix+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tester")
}

func TestStaffAuth_ExpiredToken(t *testing.T) {
	token := signStaffToken(t, testJWTSecret, model.RoleOperator, time.Now().Add(-time.Hour))
	w, resp := doStaffRequest(t, staffTestRouter(), BearerPrefix+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrStaffUnauthorized.Code, resp.Code)
}

func TestStaffAuth_WrongSecret(t *testing.T) {
	token := signStaffToken(t, "some-other-secret", model.RoleOperator, time.Now().Add(time.Hour))
	w, _ := doStaffRequest(t, staffTestRouter(), BearerPrefix+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePermission_Allowed(t *testing.T) {
	token := signStaffToken(t, testJWTSecret, model.RoleOperator, time.Now().Add(time.Hour))
	r := staffTestRouter(RequirePermission(model.PermPayoutWrite))
	w, _ := doStaffRequest(t, r, BearerPrefix+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermission_Forbidden(t *testing.T) {
	token := signStaffToken(t, testJWTSecret, model.RoleViewer, time.Now().Add(time.Hour))
	r := staffTestRouter(RequirePermission(model.PermPayoutWrite))
	w, resp := doStaffRequest(t, r, BearerPrefix+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrStaffForbidden.Code, resp.Code)
}

func TestRequirePermission_AnyOf(t *testing.T) {
	// 多个权限满足其一即可
	token := signStaffToken(t, testJWTSecret, model.RoleViewer, time.Now().Add(time.Hour))
	r := staffTestRouter(RequirePermission(model.PermPayoutWrite, model.PermPayoutRead))
	w, _ := doStaffRequest(t, r, BearerPrefix+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
