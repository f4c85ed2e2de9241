// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"prestadores-api/internal/model"
	"prestadores-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prestadores is an in-memory PrestadorRepository. Setting Err makes every
// call fail with it.
type Prestadores struct {
	mu    sync.Mutex
	docs  []model.Prestador
	Err   error
	Calls int
}

var _ repository.PrestadorRepository = (*Prestadores)(nil)

func NewPrestadores(seed ...model.Prestador) *Prestadores {
	r := &Prestadores{}
	for _, p := range seed {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		r.docs = append(r.docs, p)
	}
	return r
}

func (r *Prestadores) begin() error {
	r.Calls++
	return r.Err
}

func (r *Prestadores) Create(_ context.Context, p *model.Prestador) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return err
	}
	p.ID = primitive.NewObjectID()
	r.docs = append(r.docs, *p)
	return nil
}

func (r *Prestadores) FindByID(_ context.Context, id primitive.ObjectID) (*model.Prestador, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	for _, p := range r.docs {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Prestadores) List(_ context.Context, opts repository.ListOptions) ([]model.Prestador, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	out := append([]model.Prestador(nil), r.docs...)
	if opts.SortField == "razao_social" {
		sort.SliceStable(out, func(i, j int) bool {
			if opts.SortDesc {
				return out[i].RazaoSocial > out[j].RazaoSocial
			}
			return out[i].RazaoSocial < out[j].RazaoSocial
		})
	}
	if opts.Skip >= int64(len(out)) {
		return []model.Prestador{}, nil
	}
	out = out[opts.Skip:]
	if opts.Limit > 0 && opts.Limit < int64(len(out)) {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r *Prestadores) SearchByRazao(_ context.Context, filtro string) ([]model.Prestador, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	f := strings.ToLower(filtro)
	out := []model.Prestador{}
	for _, p := range r.docs {
		fantasia := ""
		if p.NomeFantasia != nil {
			fantasia = *p.NomeFantasia
		}
		if strings.Contains(strings.ToLower(p.RazaoSocial), f) || strings.Contains(strings.ToLower(fantasia), f) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *Prestadores) ExistsByCNPJ(_ context.Context, cnpj string, exclude primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return false, err
	}
	for _, p := range r.docs {
		if p.CNPJ == cnpj && p.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (r *Prestadores) Update(_ context.Context, p *model.Prestador) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return 0, 0, err
	}
	for i, cur := range r.docs {
		if cur.ID == p.ID {
			next := *p
			next.UsuarioInclusao = cur.UsuarioInclusao
			r.docs[i] = next
			return 1, 1, nil
		}
	}
	return 0, 0, nil
}

func (r *Prestadores) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return 0, err
	}
	for i, p := range r.docs {
		if p.ID == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// All returns a snapshot of the stored documents.
func (r *Prestadores) All() []model.Prestador {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Prestador(nil), r.docs...)
}

// Usuarios is an in-memory UsuarioRepository. Setting Err makes every call
// fail with it.
type Usuarios struct {
	mu    sync.Mutex
	docs  []model.Usuario
	Err   error
	Calls int
}

var _ repository.UsuarioRepository = (*Usuarios)(nil)

func NewUsuarios(seed ...model.Usuario) *Usuarios {
	r := &Usuarios{}
	for _, u := range seed {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.docs = append(r.docs, u)
	}
	return r
}

func (r *Usuarios) begin() error {
	r.Calls++
	return r.Err
}

func (r *Usuarios) Create(_ context.Context, u *model.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return err
	}
	u.ID = primitive.NewObjectID()
	r.docs = append(r.docs, *u)
	return nil
}

func (r *Usuarios) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	for _, u := range r.docs {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Usuarios) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return false, err
	}
	for _, u := range r.docs {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *Usuarios) List(_ context.Context) ([]model.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.begin(); err != nil {
		return nil, err
	}
	out := make([]model.Usuario, len(r.docs))
	for i, u := range r.docs {
		u.Senha = ""
		out[i] = u
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

// All returns a snapshot of the stored documents, hashes included.
func (r *Usuarios) All() []model.Usuario {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Usuario(nil), r.docs...)
}
