package handler

import (
	"net/http"

	"prestadores-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UsuariosHandler serves registration, login and the user listing.
type UsuariosHandler struct{ svc service.AuthService }

func NewUsuariosHandler(svc service.AuthService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

// Login godoc
// @Summary Autentica o usuário e devolve o token JWT
// @Tags usuarios
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.LoginResponse
// @Failure 403 {object} apierror.ValidationError
// @Failure 404 {object} apierror.ValidationError
// @Router /usuarios/login [post]
func (h *UsuariosHandler) Login(c *gin.Context) {
	doc, ok := readDocument(c)
	if !ok {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), doc)
	if err != nil {
		respondError(c, err, http.StatusForbidden, "Erro ao gerar o token de acesso")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Registrar godoc
// @Summary Cadastra um novo usuário
// @Tags usuarios
// @Accept json
// @Produce json
// @Param body body dto.RegistrarUsuarioRequest true "Usuário"
// @Success 201 {object} dto.InsertResult
// @Failure 403 {object} apierror.ValidationError
// @Router /usuarios [post]
func (h *UsuariosHandler) Registrar(c *gin.Context) {
	doc, ok := readDocument(c)
	if !ok {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), doc)
	if err != nil {
		respondError(c, err, http.StatusForbidden, "Erro ao cadastrar o usuário")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista os usuários (sem a senha)
// @Tags usuarios
// @Produce json
// @Security AccessToken
// @Success 200 {array} dto.UsuarioResponse
// @Router /usuarios [get]
func (h *UsuariosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarUsuarios(c.Request.Context())
	if err != nil {
		respondError(c, err, http.StatusBadRequest, "Erro ao obter a listagem dos usuários")
		return
	}
	c.JSON(http.StatusOK, resp)
}
