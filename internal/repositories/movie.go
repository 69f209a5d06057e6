package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sbilibin2017/filmtrack/internal/logger"
	"github.com/sbilibin2017/filmtrack/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MoviesCollection is the MongoDB collection holding movie documents.
const MoviesCollection = "movies"

// MovieRepository stores movies in MongoDB. Every lookup and mutation is
// filtered by owner so that one user can never see or touch another user's movie.
type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{col: db.Collection(MoviesCollection)}
}

// EnsureIndexes creates the owner index used by every query.
func (r *MovieRepository) EnsureIndexes(ctx context.Context) error {
	name, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})

	logger.FromContext(ctx).Infow("ensure index",
		"collection", MoviesCollection,
		"index", name,
		"error", err,
	)

	return err
}

// Insert stores movie and sets its ID.
func (r *MovieRepository) Insert(ctx context.Context, movie *models.MovieDB) (*models.MovieDB, error) {
	movie.ID = primitive.NilObjectID
	res, err := r.col.InsertOne(ctx, movie)

	logger.FromContext(ctx).Infow("mongo operation",
		"op", "insert",
		"user_id", movie.UserID,
		"result", insertedID(res),
		"error", err,
	)

	if err != nil {
		return nil, fmt.Errorf("mongo insert: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.New("unexpected inserted id type")
	}
	movie.ID = oid

	return movie, nil
}

func insertedID(res *mongo.InsertOneResult) any {
	if res == nil {
		return nil
	}
	return res.InsertedID
}

// ListByOwner returns the owner's movies, newest first.
func (r *MovieRepository) ListByOwner(ctx context.Context, userID string) ([]models.MovieDB, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		logger.FromContext(ctx).Infow("mongo operation", "op", "find", "user_id", userID, "error", err)
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cur.Close(ctx)

	movies := []models.MovieDB{}
	err = cur.All(ctx, &movies)

	logger.FromContext(ctx).Infow("mongo operation",
		"op", "find",
		"user_id", userID,
		"result", len(movies),
		"error", err,
	)

	if err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}
	return movies, nil
}

// GetByIDAndOwner returns the movie, or nil if it does not exist or belongs to someone else.
func (r *MovieRepository) GetByIDAndOwner(ctx context.Context, id, userID string) (*models.MovieDB, error) {
	filter, err := ownerFilter(id, userID)
	if err != nil {
		return nil, err
	}

	var movie models.MovieDB
	err = r.col.FindOne(ctx, filter).Decode(&movie)

	logger.FromContext(ctx).Infow("mongo operation",
		"op", "find_one",
		"filter", filter,
		"found", err == nil,
		"error", err,
	)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find one: %w", err)
	}
	return &movie, nil
}

// ReplaceByIDAndOwner overwrites the editable fields of the movie and returns the
// stored result, or nil if there is no such movie for this owner.
func (r *MovieRepository) ReplaceByIDAndOwner(ctx context.Context, id, userID string, movie *models.MovieDB) (*models.MovieDB, error) {
	update := bson.M{"$set": bson.M{
		"title":        movie.Title,
		"director":     movie.Director,
		"release_year": movie.ReleaseYear,
		"watched":      movie.Watched,
		"updated_at":   movie.UpdatedAt,
	}}
	return r.findOneAndUpdate(ctx, "replace", id, userID, update)
}

// SetWatched stores the watched flag and returns the updated movie, or nil if there is no such movie for this owner.
func (r *MovieRepository) SetWatched(ctx context.Context, id, userID string, watched bool, updatedAt time.Time) (*models.MovieDB, error) {
	update := bson.M{"$set": bson.M{
		"watched":    watched,
		"updated_at": updatedAt,
	}}
	return r.findOneAndUpdate(ctx, "set_watched", id, userID, update)
}

func (r *MovieRepository) findOneAndUpdate(ctx context.Context, op, id, userID string, update bson.M) (*models.MovieDB, error) {
	filter, err := ownerFilter(id, userID)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var movie models.MovieDB
	err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&movie)

	logger.FromContext(ctx).Infow("mongo operation",
		"op", op,
		"filter", filter,
		"found", err == nil,
		"error", err,
	)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo %s: %w", op, err)
	}
	return &movie, nil
}

// DeleteByIDAndOwner removes the movie and reports whether anything was deleted.
func (r *MovieRepository) DeleteByIDAndOwner(ctx context.Context, id, userID string) (bool, error) {
	filter, err := ownerFilter(id, userID)
	if err != nil {
		return false, err
	}

	res, err := r.col.DeleteOne(ctx, filter)

	var deleted int64
	if res != nil {
		deleted = res.DeletedCount
	}
	logger.FromContext(ctx).Infow("mongo operation",
		"op", "delete",
		"filter", filter,
		"result", deleted,
		"error", err,
	)

	if err != nil {
		return false, fmt.Errorf("mongo delete: %w", err)
	}
	return deleted > 0, nil
}

func ownerFilter(id, userID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return bson.M{"_id": oid, "user_id": userID}, nil
}
