package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Prestador is a service-provider company. CNPJ is unique across the
// collection.
type Prestador struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CNPJ                string             `bson:"cnpj" json:"cnpj"`
	RazaoSocial         string             `bson:"razao_social" json:"razao_social"`
	CEP                 string             `bson:"cep" json:"cep"`
	Endereco            Endereco           `bson:"endereco" json:"endereco"`
	CNAEFiscal          int64              `bson:"cnae_fiscal" json:"cnae_fiscal"`
	NomeFantasia        *string            `bson:"nome_fantasia" json:"nome_fantasia"`
	DataInicioAtividade string             `bson:"data_inicio_atividade" json:"data_inicio_atividade"`
	Localizacao         Localizacao        `bson:"localizacao" json:"localizacao"`
	// UsuarioInclusao is the id of the user that created the record.
	UsuarioInclusao string `bson:"usuarioInclusao,omitempty" json:"usuarioInclusao,omitempty"`
}

type Endereco struct {
	Logradouro  string `bson:"logradouro" json:"logradouro"`
	Complemento string `bson:"complemento" json:"complemento"`
	Bairro      string `bson:"bairro" json:"bairro"`
	Localidade  string `bson:"localidade" json:"localidade"`
	UF          string `bson:"uf" json:"uf"`
}

// Localizacao is a GeoJSON point: Coordinates holds [longitude, latitude].
type Localizacao struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}
