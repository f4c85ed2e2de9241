package model

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	TipoAdmin   = "Admin"
	TipoCliente = "Cliente"
)

// Usuario is an application account. Senha only ever holds a bcrypt hash and
// is never serialized to clients.
type Usuario struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Nome   string             `bson:"nome" json:"nome"`
	Email  string             `bson:"email" json:"email"`
	Senha  string             `bson:"senha,omitempty" json:"-"`
	Ativo  bool               `bson:"ativo" json:"ativo"`
	Tipo   string             `bson:"tipo" json:"tipo"`
	Avatar string             `bson:"avatar" json:"avatar"`
}
