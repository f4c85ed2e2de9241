package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"prestadores-api/internal/config"
	"prestadores-api/internal/handler"
	"prestadores-api/internal/middleware"
	"prestadores-api/internal/model"
	"prestadores-api/internal/repository/repotest"
	"prestadores-api/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func init() { gin.SetMode(gin.TestMode) }

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context, *readpref.ReadPref) error { return p.err }

type testApp struct {
	engine      *gin.Engine
	prestadores *repotest.Prestadores
	usuarios    *repotest.Usuarios
	tokens      *token.Manager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := &config.Config{Env: "test", SecretKey: testSecret, TokenTTL: time.Hour, BcryptCost: bcrypt.MinCost}
	app := &testApp{
		prestadores: repotest.NewPrestadores(),
		usuarios:    repotest.NewUsuarios(),
		tokens:      token.NewManager(testSecret, time.Hour),
	}
	app.engine = newEngine(cfg, app.prestadores, app.usuarios, fakePinger{})
	return app
}

func (a *testApp) do(method, path, tok string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.RequestURI = path
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set(middleware.TokenHeader, tok)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) token(t *testing.T) string {
	t.Helper()
	tok, err := a.tokens.Issue(primitive.NewObjectID().Hex())
	require.NoError(t, err)
	return tok
}

func prestadorBody(cnpj string) map[string]any {
	return map[string]any{
		"cnpj":         cnpj,
		"razao_social": "LAVANDA DE CRISTO",
		"cep":          "13310160",
		"endereco": map[string]any{
			"logradouro": "Av. Presidente Kennedy, 321", "complemento": "",
			"bairro": "Centro", "localidade": "Votorantim", "uf": "SP",
		},
		"cnae_fiscal":           451510,
		"nome_fantasia":         "ZÉ JANAI2",
		"data_inicio_atividade": "2022-07-22",
		"localizacao": map[string]any{
			"type": "Point", "coordinates": []float64{-23.2904, -47.2963},
		},
	}
}

type violationBody struct {
	Detail string `json:"detail"`
	Errors []struct {
		Value any    `json:"value"`
		Msg   string `json:"msg"`
		Param string `json:"param"`
	} `json:"errors"`
}

func (v violationBody) params() []string {
	out := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		out = append(out, e.Param)
	}
	return out
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// ── Gate ──────────────────────────────────────────────────────────────────────

func TestProtectedRoutes_RequireToken(t *testing.T) {
	app := newTestApp(t)
	id := primitive.NewObjectID().Hex()
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/prestadores"},
		{http.MethodGet, "/api/prestadores/id/" + id},
		{http.MethodGet, "/api/prestadores/razao/lavanda"},
		{http.MethodPost, "/api/prestadores"},
		{http.MethodPut, "/api/prestadores"},
		{http.MethodDelete, "/api/prestadores/" + id},
		{http.MethodGet, "/api/usuarios"},
	}
	expired, err := token.NewManager(testSecret, -time.Minute).Issue(id)
	require.NoError(t, err)

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, app.do(rt.method, rt.path, "", nil).Code)
			assert.Equal(t, http.StatusForbidden, app.do(rt.method, rt.path, "abc.def.ghi", nil).Code)
			assert.Equal(t, http.StatusForbidden, app.do(rt.method, rt.path, expired, nil).Code)
		})
	}
}

func TestCreate_TokenCheckedBeforeValidation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/api/prestadores", "", prestadorBody("78439823092676"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, app.prestadores.Calls, "an unauthenticated request must not query the store")

	w = app.do(http.MethodPut, "/api/prestadores", "invalido", map[string]any{"_id": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, app.prestadores.Calls)
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

func TestUsuarios_RegisterAndLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/api/usuarios", "", map[string]any{
		"nome": "Ana Silva", "email": "ana@x.com", "senha": "Abc123!",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ins := decode[struct {
		Acknowledged bool   `json:"acknowledged"`
		InsertedID   string `json:"insertedId"`
	}](t, w)
	assert.True(t, ins.Acknowledged)

	stored := app.usuarios.All()
	require.Len(t, stored, 1)
	assert.NotEqual(t, "Abc123!", stored[0].Senha)
	assert.Contains(t, stored[0].Avatar, "Ana+Silva")
	assert.Equal(t, ins.InsertedID, stored[0].ID.Hex())

	// correct credentials
	w = app.do(http.MethodPost, "/api/usuarios/login", "", map[string]any{"email": "ana@x.com", "senha": "Abc123!"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decode[struct {
		AccessToken string `json:"access_token"`
	}](t, w)
	require.NotEmpty(t, login.AccessToken)
	claims, err := app.tokens.Verify(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, stored[0].ID.Hex(), claims.Usuario.ID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))

	// wrong password
	w = app.do(http.MethodPost, "/api/usuarios/login", "", map[string]any{"email": "ana@x.com", "senha": "Errada1!"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "Errada1!")

	// unknown email
	w = app.do(http.MethodPost, "/api/usuarios/login", "", map[string]any{"email": "bia@x.com", "senha": "Abc123!"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "bia@x.com")

	// list with the issued token, no hashes
	w = app.do(http.MethodGet, "/api/usuarios", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "senha")
	assert.NotContains(t, w.Body.String(), stored[0].Senha)
}

func TestUsuarios_RegisterValidation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/api/usuarios", "", map[string]any{
		"nome": "A1", "email": "nao-e-email", "senha": "123",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	body := decode[violationBody](t, w)
	assert.Equal(t, "Erro de validação", body.Detail)
	assert.Subset(t, body.params(), []string{"nome", "email", "senha"})
	assert.Empty(t, app.usuarios.All())
}

func TestUsuarios_InvalidJSON(t *testing.T) {
	app := newTestApp(t)
	req, _ := http.NewRequest(http.MethodPost, "/api/usuarios/login", bytes.NewBufferString("{nope"))
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ── Prestadores ───────────────────────────────────────────────────────────────

func TestPrestadores_CreateThenGet(t *testing.T) {
	app := newTestApp(t)
	tok := app.token(t)

	w := app.do(http.MethodPost, "/api/prestadores", tok, prestadorBody("78439823092676"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ins := decode[struct {
		InsertedID string `json:"insertedId"`
	}](t, w)

	w = app.do(http.MethodGet, "/api/prestadores/id/"+ins.InsertedID, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]model.Prestador](t, w)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, ins.InsertedID, p.ID.Hex())
	assert.Equal(t, "78439823092676", p.CNPJ)
	assert.Equal(t, "LAVANDA DE CRISTO", p.RazaoSocial)
	assert.Equal(t, "13310160", p.CEP)
	assert.Equal(t, model.Endereco{
		Logradouro: "Av. Presidente Kennedy, 321", Bairro: "Centro", Localidade: "Votorantim", UF: "SP",
	}, p.Endereco)
	assert.Equal(t, int64(451510), p.CNAEFiscal)
	require.NotNil(t, p.NomeFantasia)
	assert.Equal(t, "ZÉ JANAI2", *p.NomeFantasia)
	assert.Equal(t, "2022-07-22", p.DataInicioAtividade)
	assert.Equal(t, []float64{-23.2904, -47.2963}, p.Localizacao.Coordinates)
}

func TestPrestadores_DuplicateCNPJ(t *testing.T) {
	app := newTestApp(t)
	tok := app.token(t)

	require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/api/prestadores", tok, prestadorBody("78439823092676")).Code)

	w := app.do(http.MethodPost, "/api/prestadores", tok, prestadorBody("78439823092676"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[violationBody](t, w).params(), "cnpj")
	assert.Len(t, app.prestadores.All(), 1)
}

func TestPrestadores_GetUnknownAndInvalidID(t *testing.T) {
	app := newTestApp(t)
	tok := app.token(t)

	w := app.do(http.MethodGet, "/api/prestadores/id/"+primitive.NewObjectID().Hex(), tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = app.do(http.MethodGet, "/api/prestadores/id/123", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrestadores_Update(t *testing.T) {
	app := newTestApp(t)
	tok := app.token(t)

	w := app.do(http.MethodPost, "/api/prestadores", tok, prestadorBody("78439823092676"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[struct {
		InsertedID string `json:"insertedId"`
	}](t, w).InsertedID

	body := prestadorBody("78439823092676")
	body["_id"] = id
	body["razao_social"] = "LAVANDA NOVA"
	w = app.do(http.MethodPut, "/api/prestadores", tok, body)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	res := decode[struct {
		MatchedCount  int64 `json:"matchedCount"`
		ModifiedCount int64 `json:"modifiedCount"`
	}](t, w)
	assert.Equal(t, int64(1), res.MatchedCount)

	w = app.do(http.MethodPut, "/api/prestadores", tok, prestadorBody("78439823092676"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[violationBody](t, w).params(), "_id")
}

func TestPrestadores_DeleteNonexistent(t *testing.T) {
	app := newTestApp(t)
	tok := app.token(t)
	id := primitive.NewObjectID().Hex()

	w := app.do(http.MethodDelete, "/api/prestadores/"+id, tok, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode[violationBody](t, w)
	require.Len(t, body.Errors, 1)
	assert.Contains(t, body.Errors[0].Msg, id)
}

func TestPrestadores_DeleteExisting(t *testing.T) {
	app := newTestApp(t)
	tok := app.token(t)
	w := app.do(http.MethodPost, "/api/prestadores", tok, prestadorBody("78439823092676"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[struct {
		InsertedID string `json:"insertedId"`
	}](t, w).InsertedID

	w = app.do(http.MethodDelete, "/api/prestadores/"+id, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, w.Body.String())
	assert.Empty(t, app.prestadores.All())
}

func TestPrestadores_ListAndSearch(t *testing.T) {
	app := newTestApp(t)
	tok := app.token(t)
	for _, cnpj := range []string{"78439823092676", "11222333000181"} {
		require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/api/prestadores", tok, prestadorBody(cnpj)).Code)
	}

	w := app.do(http.MethodGet, "/api/prestadores?limit=1", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Prestador](t, w), 1)

	w = app.do(http.MethodGet, "/api/prestadores?limit=abc", tok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(http.MethodGet, "/api/prestadores/razao/lavanda", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Prestador](t, w), 2)
}

func TestPrestadores_StoreFailureIsGeneric(t *testing.T) {
	app := newTestApp(t)
	tok := app.token(t)
	app.prestadores.Err = errors.New("connection refused: mongodb://admin:secret@db")

	w := app.do(http.MethodGet, "/api/prestadores", tok, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
	assert.Contains(t, w.Body.String(), "Erro ao obter a listagem dos prestadores")
}

// ── Health & static ───────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w := app.do(http.MethodGet, "/api", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "100% funcional")

	cfg := &config.Config{SecretKey: testSecret, TokenTTL: time.Hour}
	down := newEngine(cfg, repotest.NewPrestadores(), repotest.NewUsuarios(), fakePinger{err: errors.New("down")})
	w = httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api", nil)
	down.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStaticFrontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	cfg := &config.Config{SecretKey: testSecret, TokenTTL: time.Hour, PublicDir: dir}
	r := newEngine(cfg, repotest.NewPrestadores(), repotest.NewUsuarios(), fakePinger{})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		return w
	}

	assert.Contains(t, get("/app.js").Body.String(), "console.log")
	assert.Contains(t, get("/prestadores/novo").Body.String(), "<html>app</html>")
	assert.Equal(t, http.StatusNoContent, get("/favicon.ico").Code)
	assert.Equal(t, http.StatusNotFound, get("/api/nada").Code)
}

func TestSwaggerDoc_ListsHealth(t *testing.T) {
	app := newTestApp(t)
	w := app.do(http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		BasePath string                    `json:"basePath"`
		Info     struct{ Version string }  `json:"info"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "/api", doc.BasePath)
	assert.Equal(t, handler.Version, doc.Info.Version)
	assert.Contains(t, doc.Paths["/"], "get")
	assert.Contains(t, doc.Paths["/usuarios/login"], "post")
}
