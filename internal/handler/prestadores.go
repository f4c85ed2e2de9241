package handler

import (
	"errors"
	"fmt"
	"net/http"

	"prestadores-api/internal/apierror"
	"prestadores-api/internal/dto"
	"prestadores-api/internal/middleware"
	"prestadores-api/internal/service"
	"prestadores-api/internal/validation"

	"github.com/gin-gonic/gin"
)

type PrestadoresHandler struct{ svc service.PrestadorService }

func NewPrestadoresHandler(svc service.PrestadorService) *PrestadoresHandler {
	return &PrestadoresHandler{svc: svc}
}

// Listar godoc
// @Summary Lista os prestadores
// @Tags prestadores
// @Produce json
// @Security AccessToken
// @Param limit query int false "Máximo de registros (padrão 10)"
// @Param skip query int false "Registros a pular"
// @Param order query string false "Campo de ordenação, prefixo - para decrescente"
// @Success 200 {array} model.Prestador
// @Router /prestadores [get]
func (h *PrestadoresHandler) Listar(c *gin.Context) {
	var filter dto.PrestadorFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parâmetros de consulta inválidos"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, http.StatusBadRequest, "Erro ao obter a listagem dos prestadores")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObterPorID godoc
// @Summary Obtém o prestador pelo id (array com 0 ou 1 elemento)
// @Tags prestadores
// @Produce json
// @Security AccessToken
// @Param id path string true "ObjectID"
// @Success 200 {array} model.Prestador
// @Router /prestadores/id/{id} [get]
func (h *PrestadoresHandler) ObterPorID(c *gin.Context) {
	resp, err := h.svc.ObterPorID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, http.StatusBadRequest, "Erro ao obter o prestador pelo ID")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarPorRazao godoc
// @Summary Busca prestadores pela razão social ou nome fantasia
// @Tags prestadores
// @Produce json
// @Security AccessToken
// @Param filtro path string true "Trecho da razão social ou nome fantasia"
// @Success 200 {array} model.Prestador
// @Router /prestadores/razao/{filtro} [get]
func (h *PrestadoresHandler) BuscarPorRazao(c *gin.Context) {
	resp, err := h.svc.BuscarPorRazao(c.Request.Context(), c.Param("filtro"))
	if err != nil {
		respondError(c, err, http.StatusBadRequest, "Erro ao obter o prestador pela razão social")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Criar godoc
// @Summary Inclui um prestador
// @Tags prestadores
// @Accept json
// @Produce json
// @Security AccessToken
// @Param body body model.Prestador true "Prestador"
// @Success 201 {object} dto.InsertResult
// @Failure 400 {object} apierror.ValidationError
// @Router /prestadores [post]
func (h *PrestadoresHandler) Criar(c *gin.Context) {
	usuarioID, ok := middleware.GetUsuarioID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Acesso negado. É obrigatório o envio do token JWT"))
		return
	}
	doc, ok := readDocument(c)
	if !ok {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), doc, usuarioID)
	if err != nil {
		respondError(c, err, http.StatusBadRequest, "Erro ao incluir o prestador")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Alterar godoc
// @Summary Altera um prestador identificado pelo _id do corpo
// @Tags prestadores
// @Accept json
// @Produce json
// @Security AccessToken
// @Param body body model.Prestador true "Prestador com _id"
// @Success 202 {object} dto.UpdateResult
// @Failure 400 {object} apierror.ValidationError
// @Router /prestadores [put]
func (h *PrestadoresHandler) Alterar(c *gin.Context) {
	doc, ok := readDocument(c)
	if !ok {
		return
	}
	resp, err := h.svc.Alterar(c.Request.Context(), doc)
	if err != nil {
		respondError(c, err, http.StatusBadRequest, "Erro ao alterar o prestador")
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

// Excluir godoc
// @Summary Exclui um prestador
// @Tags prestadores
// @Produce json
// @Security AccessToken
// @Param id path string true "ObjectID"
// @Success 200 {object} dto.DeleteResult
// @Failure 404 {object} apierror.ValidationError
// @Router /prestadores/{id} [delete]
func (h *PrestadoresHandler) Excluir(c *gin.Context) {
	id := c.Param("id")
	resp, err := h.svc.Excluir(c.Request.Context(), id)
	if errors.Is(err, service.ErrPrestadorNaoEncontrado) {
		c.JSON(http.StatusNotFound, &apierror.ValidationError{
			Detail: "Erro ao excluir o prestador",
			Errors: validation.Errors{{
				Value: id,
				Msg:   fmt.Sprintf("Não há nenhum prestador com o id %s", id),
				Param: "id",
			}},
		})
		return
	}
	if err != nil {
		respondError(c, err, http.StatusBadRequest, "Erro ao excluir o prestador")
		return
	}
	c.JSON(http.StatusOK, resp)
}
