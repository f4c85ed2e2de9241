// Package schema declares the field rules for every request body the API
// accepts.
package schema

import (
	"context"
	"regexp"

	"prestadores-api/internal/repository"
	"prestadores-api/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Prestador returns the rules for creating a prestador.
func Prestador(repo repository.PrestadorRepository) validation.Schema {
	return validation.Schema{
		validation.Check("cnpj").
			NotEmpty("É obrigatório informar o cnpj").Trim().
			Digits("O CNPJ deve ter apenas números").
			Length(14, 14, "O CNPJ deve ter 14 números").
			Custom(uniqueCNPJ(repo)),
		validation.Check("razao_social").
			NotEmpty("A razão social é obrigatória").Trim().
			Length(5, -1, "A razão social é muito curta. Mínimo de 5").
			Length(0, 200, "A razão social é muito longa. Máximo de 200").
			Alphanumeric("pt-BR", "/. ", "A razão social não pode conter caracteres especiais"),
		validation.Check("cep").
			Length(8, 8, "O CEP informado é inválido").
			Digits("O CEP deve ter apenas números").
			NotEmpty("É obrigatório informar o cep").Trim(),
		validation.Check("endereco.logradouro").NotEmpty("O logradouro é obrigatório"),
		validation.Check("endereco.bairro").NotEmpty("O bairro é obrigatório"),
		validation.Check("endereco.localidade").NotEmpty("A localidade é obrigatória"),
		validation.Check("endereco.uf").Length(2, 2, "UF é inválida"),
		validation.Check("cnae_fiscal").
			Numeric("O CNAE deve ser um número").
			Int("O CNAE deve ser um número inteiro").
			ToInt(),
		validation.Check("nome_fantasia").Optional(true).Trim(),
		validation.Check("data_inicio_atividade").
			Matches(isoDate, "O formato de data é inválido. Informe yyyy-mm-dd"),
		validation.Check("localizacao.type").Equals("Point", "Tipo inválido"),
		validation.Check("localizacao.coordinates").
			IsArray("Coordenadas inválidas").
			Custom(coordinatePair),
		validation.Check("localizacao.coordinates.*").
			Float("Os valores das coordenadas devem ser números").ToFloat(),
	}
}

// PrestadorUpdate returns the rules for replacing a prestador: the creation
// rules plus a required, well-formed _id. The cnpj uniqueness check then
// ignores the document being updated.
func PrestadorUpdate(repo repository.PrestadorRepository) validation.Schema {
	id := validation.Check("_id").
		NotEmpty("O _id é obrigatório para alterar o prestador").
		Custom(func(_ context.Context, v any, _ validation.Document) (string, error) {
			s, _ := v.(string)
			if s == "" {
				return "", nil
			}
			if _, err := primitive.ObjectIDFromHex(s); err != nil {
				return "O _id informado é inválido", nil
			}
			return "", nil
		})
	return append(validation.Schema{id}, Prestador(repo)...)
}

func uniqueCNPJ(repo repository.PrestadorRepository) validation.CustomFunc {
	return func(ctx context.Context, v any, doc validation.Document) (string, error) {
		cnpj, _ := v.(string)
		if cnpj == "" {
			return "", nil
		}
		exclude, _ := primitive.ObjectIDFromHex(doc.String("_id"))
		exists, err := repo.ExistsByCNPJ(ctx, cnpj, exclude)
		if err != nil {
			return "", err
		}
		if exists {
			return "O CNPJ informado já está cadastrado!", nil
		}
		return "", nil
	}
}

func coordinatePair(_ context.Context, v any, _ validation.Document) (string, error) {
	arr, ok := v.([]any)
	if ok && len(arr) != 2 {
		return "Informe as coordenadas como [longitude, latitude]", nil
	}
	return "", nil
}
