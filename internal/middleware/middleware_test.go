package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prestadores-api/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func init() { gin.SetMode(gin.TestMode) }

func protectedRouter(tokens *token.Manager) *gin.Engine {
	r := gin.New()
	r.Use(Auth(tokens))
	r.GET("/protected", func(c *gin.Context) {
		id, ok := GetUsuarioID(c)
		c.JSON(http.StatusOK, gin.H{"usuario_id": id, "ok": ok, "exp": getClaims(c).ExpiresAt.Unix()})
	})
	return r
}

func get(r http.Handler, path, tok string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if tok != "" {
		req.Header.Set(TokenHeader, tok)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_NoToken(t *testing.T) {
	w := get(protectedRouter(token.NewManager(testSecret, time.Hour)), "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "obrigatório o envio do token")
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := token.NewManager(testSecret, time.Hour)
	tok, err := tokens.Issue("65ef95a4cd35ad9b5a65427a")
	require.NoError(t, err)

	w := get(protectedRouter(tokens), "/protected", tok)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		UsuarioID string `json:"usuario_id"`
		OK        bool   `json:"ok"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "65ef95a4cd35ad9b5a65427a", body.UsuarioID)
	assert.True(t, body.OK)
}

func TestAuth_MalformedToken(t *testing.T) {
	w := get(protectedRouter(token.NewManager(testSecret, time.Hour)), "/protected", "this.is.garbage")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Token inválido: ")
}

func TestAuth_ExpiredToken(t *testing.T) {
	tok, err := token.NewManager(testSecret, -time.Second).Issue("abc")
	require.NoError(t, err)

	w := get(protectedRouter(token.NewManager(testSecret, time.Hour)), "/protected", tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuth_WrongSecret(t *testing.T) {
	tok, err := token.NewManager("outro segredo", time.Hour).Issue("abc")
	require.NoError(t, err)

	w := get(protectedRouter(token.NewManager(testSecret, time.Hour)), "/protected", tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetUsuarioID_WithoutAuth(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	id, ok := GetUsuarioID(c)
	assert.False(t, ok)
	assert.Empty(t, id)
	assert.Nil(t, getClaims(c))
}

func TestErrorHandler_HidesInternalMessage(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("connection refused: mongodb://admin:secret@db"))
	})

	w := get(r, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestErrorHandler_KeepsWrittenResponse(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/partial", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Erro ao obter a listagem"})
	})

	w := get(r, "/partial", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Erro ao obter a listagem"}`, w.Body.String())
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(*gin.Context) { panic("nil map") })

	w := get(r, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), TokenHeader)
}
