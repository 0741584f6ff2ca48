package repository

import (
	"context"
	"errors"
	"time"

	"github.com/templui/diary/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UsersCollection is the name of the Mongo collection holding users.
const UsersCollection = "users"

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	Activate     bool               `bson:"activate"`
	UniqueCode   string             `bson:"uniqueCode"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (d *userDoc) user() *model.User {
	return &model.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Activate:     d.Activate,
		UniqueCode:   d.UniqueCode,
		CreatedAt:    d.CreatedAt,
	}
}

type mongoUserRepository struct {
	users *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{users: db.Collection(UsersCollection)}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	id := primitive.NewObjectID()
	doc := userDoc{
		ID:           id,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Activate:     user.Activate,
		UniqueCode:   user.UniqueCode,
		CreatedAt:    user.CreatedAt,
	}

	_, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	user.ID = id.Hex()
	return nil
}

func (r *mongoUserRepository) ByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoUserRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) ByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"username": username}, options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*model.User, error) {
	var doc userDoc
	err := r.users.FindOne(ctx, filter, opts...).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.user(), nil
}

func (r *mongoUserRepository) SetActivate(ctx context.Context, id string, activate bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrUserNotFound
	}

	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"activate": activate}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
