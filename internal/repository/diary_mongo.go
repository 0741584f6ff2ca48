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

// DiariesCollection is the name of the Mongo collection holding diary entries.
const DiariesCollection = "diaries"

type diaryOwnerDoc struct {
	ID       string `bson:"id"`
	Username string `bson:"username"`
}

type diaryDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Content   []string           `bson:"content"`
	Dates     []string           `bson:"dates"`
	User      diaryOwnerDoc      `bson:"user"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *diaryDoc) entry() *model.DiaryEntry {
	return &model.DiaryEntry{
		ID:        d.ID.Hex(),
		Content:   d.Content,
		Dates:     d.Dates,
		User:      model.DiaryOwner{ID: d.User.ID, Username: d.User.Username},
		CreatedAt: d.CreatedAt,
	}
}

type mongoDiaryRepository struct {
	diaries *mongo.Collection
}

func NewMongoDiaryRepository(db *mongo.Database) DiaryRepository {
	return &mongoDiaryRepository{diaries: db.Collection(DiariesCollection)}
}

func (r *mongoDiaryRepository) List(ctx context.Context) ([]*model.DiaryEntry, error) {
	cur, err := r.diaries.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var docs []diaryDoc
	err = cur.All(ctx, &docs)
	if err != nil {
		return nil, err
	}

	entries := make([]*model.DiaryEntry, 0, len(docs))
	for i := range docs {
		entries = append(entries, docs[i].entry())
	}
	return entries, nil
}

func (r *mongoDiaryRepository) ByID(ctx context.Context, id string) (*model.DiaryEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrDiaryNotFound
	}

	var doc diaryDoc
	err = r.diaries.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDiaryNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.entry(), nil
}

func (r *mongoDiaryRepository) Create(ctx context.Context, entry *model.DiaryEntry) error {
	id := primitive.NewObjectID()
	doc := diaryDoc{
		ID:        id,
		Content:   entry.Content,
		Dates:     entry.Dates,
		User:      diaryOwnerDoc{ID: entry.User.ID, Username: entry.User.Username},
		CreatedAt: entry.CreatedAt,
	}

	_, err := r.diaries.InsertOne(ctx, doc)
	if err != nil {
		return err
	}

	entry.ID = id.Hex()
	return nil
}

func (r *mongoDiaryRepository) UpdateContent(ctx context.Context, id string, content []string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrDiaryNotFound
	}

	res, err := r.diaries.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"content": content}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrDiaryNotFound
	}
	return nil
}

func (r *mongoDiaryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrDiaryNotFound
	}

	res, err := r.diaries.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrDiaryNotFound
	}
	return nil
}
