package schema

import (
	"context"
	"fmt"

	"prestadores-api/internal/model"
	"prestadores-api/internal/repository"
	"prestadores-api/internal/validation"
)

// Usuario returns the rules for registering a user. Email uniqueness is only
// enforced here, at creation.
func Usuario(repo repository.UsuarioRepository) validation.Schema {
	return validation.Schema{
		validation.Check("nome").
			NotEmpty("É obrigatório informar o nome").
			Alpha("pt-BR", " ", "Informe apenas texto").
			Length(3, -1, "Informe no mínimo 3 caracteres").
			Length(0, 100, "Informe no máximo 100 caracteres"),
		validation.Check("email").
			NotEmpty("É obrigatório informar o email").Trim().
			Lowercase("Não são permitidas maiúsculas").
			Email("Informe um email válido").
			Custom(uniqueEmail(repo)),
		validation.Check("senha").
			NotEmpty("A senha é obrigatória").Trim().
			Length(6, -1, "A senha deve ter no mínimo 6 caracteres").
			StrongPassword(6, "A senha não é segura. Informe no mínimo 1 caractere maiúsculo, 1 minúsculo, 1 número e 1 caractere especial"),
		validation.Check("ativo").
			Default(true).
			Boolean("O valor deve ser um booleano").ToBoolean(),
		validation.Check("tipo").
			Default(model.TipoCliente).
			In([]string{model.TipoAdmin, model.TipoCliente}, "O tipo deve ser Admin ou Cliente"),
		validation.Check("avatar").
			Optional(true).
			URL("A URL do avatar é inválida"),
	}
}

// Login returns the rules for a login attempt.
func Login() validation.Schema {
	return validation.Schema{
		validation.Check("email").
			NotEmpty("O e-mail é obrigatório").Trim().
			Email("Informe um e-mail válido para o login"),
		validation.Check("senha").
			NotEmpty("A senha é obrigatória").Trim(),
	}
}

func uniqueEmail(repo repository.UsuarioRepository) validation.CustomFunc {
	return func(ctx context.Context, v any, _ validation.Document) (string, error) {
		email, _ := v.(string)
		if email == "" {
			return "", nil
		}
		exists, err := repo.ExistsByEmail(ctx, email)
		if err != nil {
			return "", err
		}
		if exists {
			return fmt.Sprintf("o email %s já existe!", email), nil
		}
		return "", nil
	}
}
