// Package mongo is the document-store adapter. Ids are ObjectIDs rendered as
// 24-character hex strings; notes reference categories by ObjectID.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/store"
)

const (
	categoriesCollection = "categories"
	notesCollection      = "notes"
)

// Open connects to uri and verifies the primary is reachable.
func Open(ctx context.Context, uri, database string) (*mongodriver.Database, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo URI is empty")
	}
	client, err := mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client.Database(database), nil
}

// Bootstrap creates the indexes the store relies on. The unique
// (user_id, name) index is what makes duplicate inserts fail.
func Bootstrap(ctx context.Context, db *mongodriver.Database) error {
	_, err := db.Collection(categoriesCollection).Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_name_unique"),
	})
	if err != nil {
		return fmt.Errorf("mongo categories index: %w", err)
	}
	_, err = db.Collection(notesCollection).Indexes().CreateMany(ctx, []mongodriver.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "archived", Value: 1}, {Key: "updated_at", Value: -1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("mongo notes indexes: %w", err)
	}
	return nil
}

// NewWithDatabase constructs a store over an already-bootstrapped database.
func NewWithDatabase(db *mongodriver.Database) store.Store {
	return &mongoStore{db: db}
}

type mongoStore struct{ db *mongodriver.Database }

func (s *mongoStore) Categories() store.Categories {
	return &categories{coll: s.db.Collection(categoriesCollection)}
}

func (s *mongoStore) Notes() store.Notes {
	return &notes{coll: s.db.Collection(notesCollection)}
}

func (s *mongoStore) ParseID(raw string) (string, error) {
	oid, err := toOID(raw)
	if err != nil {
		return "", err
	}
	return oid.Hex(), nil
}

// HealthPing implements health.HealthPinger.
func (s *mongoStore) HealthPing(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *mongoStore) Close() error {
	return s.db.Client().Disconnect(context.Background())
}

func toOID(raw string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", model.ErrInvalidReference, raw)
	}
	return oid, nil
}

func notFound(err error) error {
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return model.ErrNotFound
	}
	return err
}

// --- Categories ---
type categories struct{ coll *mongodriver.Collection }

type categoryDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Name        string             `bson:"name"`
	Description *string            `bson:"description,omitempty"`
	ColorCode   string             `bson:"color_code"`
}

func (d categoryDoc) toModel() *model.Category {
	return &model.Category{ID: d.ID.Hex(), UserID: d.UserID, Name: d.Name, Description: d.Description, ColorCode: d.ColorCode}
}

func (c *categories) Create(ctx context.Context, in *model.Category) (*model.Category, error) {
	doc := categoryDoc{ID: primitive.NewObjectID(), UserID: in.UserID, Name: in.Name, Description: in.Description, ColorCode: in.ColorCode}
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %q", model.ErrDuplicateName, in.Name)
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (c *categories) findOne(ctx context.Context, filter bson.M) (*model.Category, error) {
	var doc categoryDoc
	if err := c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.toModel(), nil
}

func (c *categories) GetByID(ctx context.Context, categoryID string) (*model.Category, error) {
	oid, err := toOID(categoryID)
	if err != nil {
		return nil, err
	}
	return c.findOne(ctx, bson.M{"_id": oid})
}

func (c *categories) GetByName(ctx context.Context, userID, name string) (*model.Category, error) {
	return c.findOne(ctx, bson.M{"user_id": userID, "name": name})
}

func (c *categories) List(ctx context.Context, userID string) ([]*model.Category, error) {
	cur, err := c.coll.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	res := make([]*model.Category, 0, len(docs))
	for _, d := range docs {
		res = append(res, d.toModel())
	}
	return res, nil
}

func (c *categories) Update(ctx context.Context, categoryID string, p model.CategoryPatch) (*model.Category, error) {
	if p.Empty() {
		return c.GetByID(ctx, categoryID)
	}
	oid, err := toOID(categoryID)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.ColorCode != nil {
		set["color_code"] = *p.ColorCode
	}
	var doc categoryDoc
	err = c.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %q", model.ErrDuplicateName, *p.Name)
		}
		return nil, notFound(err)
	}
	return doc.toModel(), nil
}

// Delete removes the category document. Mongo has no referential checks;
// callers reassign notes before and after the delete.
func (c *categories) Delete(ctx context.Context, categoryID string) error {
	oid, err := toOID(categoryID)
	if err != nil {
		return err
	}
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Notes ---
type notes struct{ coll *mongodriver.Collection }

type noteDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	CategoryID primitive.ObjectID `bson:"category_id"`
	Content    string             `bson:"content"`
	Tags       []string           `bson:"tags"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
	Archived   bool               `bson:"archived"`
	IsReminder bool               `bson:"is_reminder"`
	LLMRef     *string            `bson:"llm_ref,omitempty"`
}

func (d noteDoc) toModel() *model.Note {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &model.Note{
		ID: d.ID.Hex(), UserID: d.UserID, CategoryID: d.CategoryID.Hex(), Content: d.Content, Tags: tags,
		CreatedAt: d.CreatedAt.UTC(), UpdatedAt: d.UpdatedAt.UTC(),
		Archived: d.Archived, IsReminder: d.IsReminder, LLMRef: d.LLMRef,
	}
}

func (s *notes) Create(ctx context.Context, in *model.Note) (*model.Note, error) {
	catID, err := toOID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	doc := noteDoc{
		ID: primitive.NewObjectID(), UserID: in.UserID, CategoryID: catID, Content: in.Content, Tags: tags,
		CreatedAt: in.CreatedAt, UpdatedAt: in.UpdatedAt, Archived: in.Archived, IsReminder: in.IsReminder, LLMRef: in.LLMRef,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *notes) GetByID(ctx context.Context, noteID string) (*model.Note, error) {
	oid, err := toOID(noteID)
	if err != nil {
		return nil, err
	}
	var doc noteDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.toModel(), nil
}

func (s *notes) List(ctx context.Context, userID string, archived bool) ([]*model.Note, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "updated_at", Value: -1},
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: 1},
	})
	cur, err := s.coll.Find(ctx, bson.M{"user_id": userID, "archived": archived}, opts)
	if err != nil {
		return nil, err
	}
	var docs []noteDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	res := make([]*model.Note, 0, len(docs))
	for _, d := range docs {
		res = append(res, d.toModel())
	}
	return res, nil
}

func (s *notes) findOneAndSet(ctx context.Context, filter, set bson.M) (*model.Note, error) {
	var doc noteDoc
	err := s.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		return nil, notFound(err)
	}
	return doc.toModel(), nil
}

func (s *notes) Update(ctx context.Context, noteID string, p model.NotePatch, now time.Time) (*model.Note, error) {
	oid, err := toOID(noteID)
	if err != nil {
		return nil, err
	}
	set := bson.M{"updated_at": now}
	if p.CategoryID != nil {
		catID, err := toOID(*p.CategoryID)
		if err != nil {
			return nil, err
		}
		set["category_id"] = catID
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.Tags != nil {
		tags := *p.Tags
		if tags == nil {
			tags = []string{}
		}
		set["tags"] = tags
	}
	if p.Archived != nil {
		set["archived"] = *p.Archived
	}
	if p.IsReminder != nil {
		set["is_reminder"] = *p.IsReminder
	}
	if p.LLMRef != nil {
		set["llm_ref"] = *p.LLMRef
	}
	return s.findOneAndSet(ctx, bson.M{"_id": oid}, set)
}

func (s *notes) SetArchived(ctx context.Context, noteID, userID string, archived bool, now time.Time) (*model.Note, error) {
	oid, err := toOID(noteID)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"_id": oid}
	if userID != "" {
		filter["user_id"] = userID
	}
	return s.findOneAndSet(ctx, filter, bson.M{"archived": archived, "updated_at": now})
}

func (s *notes) Delete(ctx context.Context, noteID string) error {
	oid, err := toOID(noteID)
	if err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *notes) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	oid, err := toOID(categoryID)
	if err != nil {
		return 0, err
	}
	return s.coll.CountDocuments(ctx, bson.M{"category_id": oid})
}

func (s *notes) Reassign(ctx context.Context, from, to string, now time.Time) (int64, error) {
	fromID, err := toOID(from)
	if err != nil {
		return 0, err
	}
	toID, err := toOID(to)
	if err != nil {
		return 0, err
	}
	res, err := s.coll.UpdateMany(ctx,
		bson.M{"category_id": fromID},
		bson.M{"$set": bson.M{"category_id": toID, "updated_at": now}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

type countDoc struct {
	CategoryID   primitive.ObjectID `bson:"category_id"`
	CategoryName string             `bson:"category_name"`
	ColorCode    string             `bson:"color_code"`
	NoteCount    int64              `bson:"note_count"`
}

// ActiveCountsByCategory groups active notes, then joins categories. The
// $unwind drops groups whose category is missing, giving inner-join semantics.
func (s *notes) ActiveCountsByCategory(ctx context.Context, userID string) ([]model.CategoryCount, error) {
	pipeline := mongodriver.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID, "archived": false}}},
		{{Key: "$group", Value: bson.M{"_id": "$category_id", "note_count": bson.M{"$sum": 1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         categoriesCollection,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "category",
		}}},
		{{Key: "$unwind", Value: "$category"}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"category_id":   "$_id",
			"category_name": "$category.name",
			"color_code":    "$category.color_code",
			"note_count":    1,
		}}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var docs []countDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	res := make([]model.CategoryCount, 0, len(docs))
	for _, d := range docs {
		res = append(res, model.CategoryCount{
			CategoryID: d.CategoryID.Hex(), CategoryName: d.CategoryName, ColorCode: d.ColorCode, NoteCount: d.NoteCount,
		})
	}
	return res, nil
}
