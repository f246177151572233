package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookvault/books-api/internal/core/domain"
)

const collectionBooks = "books"

type BookRepository struct {
	col *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{col: db.Collection(collectionBooks)}
}

// bookDocument is the stored shape of a book. The published date is kept as
// a full BSON date-time (midnight UTC); the domain layer exposes it the same
// way and the transport layer truncates it to a date string.
type bookDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Author        string             `bson:"author"`
	PublishedDate time.Time          `bson:"published_date"`
	Genre         string             `bson:"genre"`
	Price         float64            `bson:"price"`
}

// ParseBookID converts the external 24-hex string form of a book identifier
// to an ObjectID. Any other input yields domain.ErrInvalidBookID.
func ParseBookID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidBookID
	}
	return id, nil
}

func toDocument(b *domain.Book) bookDocument {
	return bookDocument{
		Title:         b.Title,
		Author:        b.Author,
		PublishedDate: b.PublishedDate.UTC(),
		Genre:         b.Genre,
		Price:         b.Price,
	}
}

func toDomain(doc bookDocument) *domain.Book {
	return &domain.Book{
		ID:            doc.ID.Hex(),
		Title:         doc.Title,
		Author:        doc.Author,
		PublishedDate: doc.PublishedDate.UTC(),
		Genre:         doc.Genre,
		Price:         doc.Price,
	}
}

// Create inserts a new book document and returns a copy carrying the
// store-assigned identifier in its string form.
func (r *BookRepository) Create(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toDocument(b))
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert book: unexpected inserted id type %T", res.InsertedID)
	}

	created := *b
	created.ID = oid.Hex()
	return &created, nil
}

// FindAll returns every stored book in natural order.
func (r *BookRepository) FindAll(ctx context.Context) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cur.Close(ctx)

	var docs []bookDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}

	books := make([]*domain.Book, len(docs))
	for i, doc := range docs {
		books[i] = toDomain(doc)
	}
	return books, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := ParseBookID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bookDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return toDomain(doc), nil
}

// Update overwrites the supplied fields on the matching document ($set
// merge). Fields absent from the payload are left untouched in the store.
func (r *BookRepository) Update(ctx context.Context, id string, b *domain.Book) error {
	oid, err := ParseBookID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"title":          b.Title,
		"author":         b.Author,
		"published_date": b.PublishedDate.UTC(),
		"genre":          b.Genre,
		"price":          b.Price,
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	oid, err := ParseBookID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// AveragePriceByYear averages price over books published within the
// half-open interval [year-01-01, (year+1)-01-01).
func (r *BookRepository) AveragePriceByYear(ctx context.Context, year int) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"published_date": bson.M{"$gte": start, "$lt": end},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"average_price": bson.M{"$avg": "$price"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate average price: %w", err)
	}
	defer cur.Close(ctx)

	var results []struct {
		AveragePrice float64 `bson:"average_price"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("decode average price: %w", err)
	}
	if len(results) == 0 {
		return 0, domain.ErrNoBooksForYear
	}
	return results[0].AveragePrice, nil
}
