package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"prestadores-api/internal/dto"
	"prestadores-api/internal/model"
	"prestadores-api/internal/repository"
	"prestadores-api/internal/schema"
	"prestadores-api/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// sortableFields are the prestador fields a listing may be ordered by.
var sortableFields = map[string]bool{
	"_id":                   true,
	"cnpj":                  true,
	"razao_social":          true,
	"nome_fantasia":         true,
	"cep":                   true,
	"cnae_fiscal":           true,
	"data_inicio_atividade": true,
}

type PrestadorService interface {
	Listar(ctx context.Context, filter dto.PrestadorFilter) ([]model.Prestador, error)
	// ObterPorID returns zero or one prestador.
	ObterPorID(ctx context.Context, id string) ([]model.Prestador, error)
	BuscarPorRazao(ctx context.Context, filtro string) ([]model.Prestador, error)
	Criar(ctx context.Context, doc validation.Document, usuarioID string) (*dto.InsertResult, error)
	Alterar(ctx context.Context, doc validation.Document) (*dto.UpdateResult, error)
	Excluir(ctx context.Context, id string) (*dto.DeleteResult, error)
}

type prestadorService struct {
	repo        repository.PrestadorRepository
	createRules validation.Schema
	updateRules validation.Schema
}

func NewPrestadorService(repo repository.PrestadorRepository) PrestadorService {
	return &prestadorService{
		repo:        repo,
		createRules: schema.Prestador(repo),
		updateRules: schema.PrestadorUpdate(repo),
	}
}

func (s *prestadorService) Listar(ctx context.Context, filter dto.PrestadorFilter) ([]model.Prestador, error) {
	opts := repository.ListOptions{Limit: filter.Limit, Skip: filter.Skip}
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	if opts.Limit > maxLimit {
		opts.Limit = maxLimit
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	field, desc := strings.CutPrefix(filter.Order, "-")
	if sortableFields[field] {
		opts.SortField, opts.SortDesc = field, desc
	}
	return s.repo.List(ctx, opts)
}

func (s *prestadorService) ObterPorID(ctx context.Context, id string) ([]model.Prestador, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrIDInvalido
	}
	p, err := s.repo.FindByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return []model.Prestador{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []model.Prestador{*p}, nil
}

func (s *prestadorService) BuscarPorRazao(ctx context.Context, filtro string) ([]model.Prestador, error) {
	return s.repo.SearchByRazao(ctx, filtro)
}

// Criar validates and inserts a prestador on behalf of usuarioID.
func (s *prestadorService) Criar(ctx context.Context, doc validation.Document, usuarioID string) (*dto.InsertResult, error) {
	delete(doc, "_id")
	delete(doc, "usuarioInclusao")
	if err := s.createRules.Check(ctx, doc); err != nil {
		return nil, err
	}
	var p model.Prestador
	if err := doc.Decode(&p); err != nil {
		return nil, err
	}
	p.UsuarioInclusao = usuarioID

	if err := s.repo.Create(ctx, &p); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, duplicateCNPJ(p.CNPJ)
		}
		return nil, fmt.Errorf("inserindo prestador: %w", err)
	}
	return &dto.InsertResult{Acknowledged: true, InsertedID: p.ID.Hex()}, nil
}

// Alterar validates and overwrites the prestador identified by doc["_id"].
func (s *prestadorService) Alterar(ctx context.Context, doc validation.Document) (*dto.UpdateResult, error) {
	if err := s.updateRules.Check(ctx, doc); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(doc.String("_id"))
	if err != nil {
		return nil, ErrIDInvalido
	}
	delete(doc, "_id")
	delete(doc, "usuarioInclusao")

	var p model.Prestador
	if err := doc.Decode(&p); err != nil {
		return nil, err
	}
	p.ID = oid

	matched, modified, err := s.repo.Update(ctx, &p)
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, duplicateCNPJ(p.CNPJ)
		}
		return nil, fmt.Errorf("alterando prestador: %w", err)
	}
	return &dto.UpdateResult{Acknowledged: true, MatchedCount: matched, ModifiedCount: modified}, nil
}

func (s *prestadorService) Excluir(ctx context.Context, id string) (*dto.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrIDInvalido
	}
	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("excluindo prestador: %w", err)
	}
	if deleted == 0 {
		return nil, ErrPrestadorNaoEncontrado
	}
	return &dto.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}

func duplicateCNPJ(cnpj string) validation.Errors {
	return validation.Errors{{
		Value: cnpj, Msg: "O CNPJ informado já está cadastrado!", Param: "cnpj", Location: "body",
	}}
}
