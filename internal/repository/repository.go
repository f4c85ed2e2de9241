package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	PrestadoresCollection = "prestadores"
	UsuariosCollection    = "usuarios"
)

// ErrNotFound is returned by single-document lookups that match nothing.
var ErrNotFound = errors.New("registro não encontrado")

// IsDuplicateKey reports whether err is a unique index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// EnsureIndexes creates the unique indexes backing the cnpj and email
// invariants. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{PrestadoresCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "cnpj", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uni_prestadores_cnpj"),
		}},
		{PrestadoresCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "razao_social", Value: 1}},
			Options: options.Index().SetName("idx_prestadores_razao_social"),
		}},
		{UsuariosCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uni_usuarios_email"),
		}},
	}
	for _, ix := range indexes {
		if _, err := db.Collection(ix.collection).Indexes().CreateOne(ctx, ix.model); err != nil {
			return fmt.Errorf("creating index on %s: %w", ix.collection, err)
		}
	}
	return nil
}
