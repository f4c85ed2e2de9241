package repository

import (
	"context"
	"errors"

	"prestadores-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// List returns every user ordered by name, without password hashes.
	List(ctx context.Context) ([]model.Usuario, error)
}

type usuarioRepo struct{ coll *mongo.Collection }

func NewUsuarioRepository(db *mongo.Database) UsuarioRepository {
	return &usuarioRepo{coll: db.Collection(UsuariosCollection)}
}

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return nil
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	return n > 0, err
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	opts := options.Find().
		SetProjection(bson.M{"senha": 0}).
		SetSort(bson.D{{Key: "nome", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	users := make([]model.Usuario, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
