package repository

import (
	"context"
	"errors"
	"regexp"

	"prestadores-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListOptions pages and orders a prestador listing.
type ListOptions struct {
	Limit     int64
	Skip      int64
	SortField string
	SortDesc  bool
}

type PrestadorRepository interface {
	Create(ctx context.Context, p *model.Prestador) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Prestador, error)
	List(ctx context.Context, opts ListOptions) ([]model.Prestador, error)
	// SearchByRazao matches filtro as a case-insensitive substring of either
	// razao_social or nome_fantasia.
	SearchByRazao(ctx context.Context, filtro string) ([]model.Prestador, error)
	// ExistsByCNPJ ignores the document identified by exclude (zero for none).
	ExistsByCNPJ(ctx context.Context, cnpj string, exclude primitive.ObjectID) (bool, error)
	// Update overwrites every field of p.ID except the creation audit field.
	Update(ctx context.Context, p *model.Prestador) (matched, modified int64, err error)
	Delete(ctx context.Context, id primitive.ObjectID) (deleted int64, err error)
}

type prestadorRepo struct{ coll *mongo.Collection }

func NewPrestadorRepository(db *mongo.Database) PrestadorRepository {
	return &prestadorRepo{coll: db.Collection(PrestadoresCollection)}
}

func (r *prestadorRepo) Create(ctx context.Context, p *model.Prestador) error {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

func (r *prestadorRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Prestador, error) {
	var p model.Prestador
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *prestadorRepo) List(ctx context.Context, opts ListOptions) ([]model.Prestador, error) {
	dir := 1
	if opts.SortDesc {
		dir = -1
	}
	field := opts.SortField
	if field == "" {
		field = "_id"
	}
	findOpts := options.Find().
		SetLimit(opts.Limit).
		SetSkip(opts.Skip).
		SetSort(bson.D{{Key: field, Value: dir}})
	return r.find(ctx, bson.M{}, findOpts)
}

func (r *prestadorRepo) SearchByRazao(ctx context.Context, filtro string) ([]model.Prestador, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(filtro), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"razao_social": re},
		bson.M{"nome_fantasia": re},
	}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "razao_social", Value: 1}}))
}

func (r *prestadorRepo) find(ctx context.Context, filter any, opts *options.FindOptions) ([]model.Prestador, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	prestadores := make([]model.Prestador, 0)
	if err := cur.All(ctx, &prestadores); err != nil {
		return nil, err
	}
	return prestadores, nil
}

func (r *prestadorRepo) ExistsByCNPJ(ctx context.Context, cnpj string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"cnpj": cnpj}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return n > 0, err
}

func (r *prestadorRepo) Update(ctx context.Context, p *model.Prestador) (int64, int64, error) {
	fields := *p
	fields.ID = primitive.NilObjectID
	fields.UsuarioInclusao = ""
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": fields})
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (r *prestadorRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
