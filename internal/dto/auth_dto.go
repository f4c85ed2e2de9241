package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────
// Request bodies are validated as raw documents by the schema package and
// decoded into these structs only once they are valid.

type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type RegistrarUsuarioRequest struct {
	Nome   string  `json:"nome"`
	Email  string  `json:"email"`
	Senha  string  `json:"senha"`
	Ativo  bool    `json:"ativo"`
	Tipo   string  `json:"tipo"`
	Avatar *string `json:"avatar"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type UsuarioResponse struct {
	ID     string `json:"_id"`
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Ativo  bool   `json:"ativo"`
	Tipo   string `json:"tipo"`
	Avatar string `json:"avatar"`
}
