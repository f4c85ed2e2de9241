package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"prestadores-api/internal/config"
	"prestadores-api/internal/dto"
	"prestadores-api/internal/model"
	"prestadores-api/internal/repository"
	"prestadores-api/internal/schema"
	"prestadores-api/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs a session token for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type AuthService interface {
	Login(ctx context.Context, doc validation.Document) (*dto.LoginResponse, error)
	Registrar(ctx context.Context, doc validation.Document) (*dto.InsertResult, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
}

type authService struct {
	repo        repository.UsuarioRepository
	tokens      TokenIssuer
	cfg         *config.Config
	loginRules  validation.Schema
	signupRules validation.Schema
}

func NewAuthService(repo repository.UsuarioRepository, tokens TokenIssuer, cfg *config.Config) AuthService {
	return &authService{
		repo:        repo,
		tokens:      tokens,
		cfg:         cfg,
		loginRules:  schema.Login(),
		signupRules: schema.Usuario(repo),
	}
}

// Login checks the credentials and returns a signed token. An unknown email
// and a wrong password are distinct FieldErrors.
func (s *authService) Login(ctx context.Context, doc validation.Document) (*dto.LoginResponse, error) {
	if err := s.loginRules.Check(ctx, doc); err != nil {
		return nil, err
	}
	var req dto.LoginRequest
	if err := doc.Decode(&req); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fieldError(ErrEmailNaoCadastrado, "email", req.Email,
			fmt.Sprintf("O email %s não está cadastrado!", req.Email))
	}
	if err != nil {
		return nil, fmt.Errorf("buscando usuário: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Senha), []byte(req.Senha)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, fieldError(ErrSenhaIncorreta, "senha", nil, "A senha informada está incorreta")
		}
		return nil, fmt.Errorf("comparando senha: %w", err)
	}

	accessToken, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("gerando token: %w", err)
	}
	return &dto.LoginResponse{AccessToken: accessToken}, nil
}

// Registrar validates and stores a new user. The password is persisted only
// as a salted bcrypt hash.
func (s *authService) Registrar(ctx context.Context, doc validation.Document) (*dto.InsertResult, error) {
	if err := s.signupRules.Check(ctx, doc); err != nil {
		return nil, err
	}
	var req dto.RegistrarUsuarioRequest
	if err := doc.Decode(&req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), s.bcryptCost())
	if err != nil {
		return nil, fmt.Errorf("gerando hash da senha: %w", err)
	}

	user := &model.Usuario{
		Nome:   req.Nome,
		Email:  req.Email,
		Senha:  string(hash),
		Ativo:  req.Ativo,
		Tipo:   req.Tipo,
		Avatar: DefaultAvatar(req.Nome),
	}
	if req.Avatar != nil && *req.Avatar != "" {
		user.Avatar = *req.Avatar
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, validation.Errors{{
				Value: req.Email, Msg: fmt.Sprintf("o email %s já existe!", req.Email),
				Param: "email", Location: "body",
			}}
		}
		return nil, fmt.Errorf("inserindo usuário: %w", err)
	}
	return &dto.InsertResult{Acknowledged: true, InsertedID: user.ID.Hex()}, nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i, u := range users {
		resp[i] = dto.UsuarioResponse{
			ID: u.ID.Hex(), Nome: u.Nome, Email: u.Email,
			Ativo: u.Ativo, Tipo: u.Tipo, Avatar: u.Avatar,
		}
	}
	return resp, nil
}

func (s *authService) bcryptCost() int {
	if s.cfg == nil || s.cfg.BcryptCost < bcrypt.MinCost {
		return bcrypt.DefaultCost
	}
	return s.cfg.BcryptCost
}

// DefaultAvatar builds the generated avatar URL for a user name.
func DefaultAvatar(nome string) string {
	q := url.Values{}
	q.Set("name", nome)
	q.Set("background", "F00")
	q.Set("color", "FFF")
	return "https://ui-avatars.com/api/?" + q.Encode()
}
