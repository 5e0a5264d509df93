package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookvault/book-api/internal/core/domain"
)

const booksCollection = "books"

// BookRepository persists owned books. Every read and write that targets a
// single book filters on {_id, owner_id} in one query, so a book under a
// different owner is indistinguishable from a missing one.
type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{coll: db.Collection(booksCollection)}
}

type mongoBook struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Author    string             `bson:"author"`
	OwnerID   string             `bson:"owner_id"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// ownedFilter builds the {_id, owner_id} filter. A malformed id cannot match
// any document, so it collapses into the same not-found outcome.
func ownedFilter(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}
	return bson.M{"_id": oid, "owner_id": ownerID}, nil
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBook{
		Title:     book.Title,
		Author:    book.Author,
		OwnerID:   book.OwnerID,
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created := *book
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *BookRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	var mb mongoBook
	if err := r.coll.FindOne(ctx, filter).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return mb.toDomain(), nil
}

// ListByOwner returns the owner's books in creation order; _id breaks ties
// between books created in the same second.
func (r *BookRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sort := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, sort)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer cur.Close(ctx)

	var books []*domain.Book
	for cur.Next(ctx) {
		var mb mongoBook
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, mb.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

// Update mutates title and author in one owner-filtered round trip. OwnerID
// is never part of the update document.
func (r *BookRepository) Update(ctx context.Context, id, ownerID, title, author string) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"title":      title,
		"author":     author,
		"updated_at": time.Now().UTC(),
	}}

	var mb mongoBook
	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mb)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BookRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the owner-scoped queries.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}

func (mb *mongoBook) toDomain() *domain.Book {
	return &domain.Book{
		ID:        mb.ID.Hex(),
		Title:     mb.Title,
		Author:    mb.Author,
		OwnerID:   mb.OwnerID,
		CreatedAt: mb.CreatedAt.UTC(),
		UpdatedAt: mb.UpdatedAt.UTC(),
	}
}
