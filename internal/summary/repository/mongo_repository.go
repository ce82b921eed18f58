package repository

import (
	"context"
	"errors"
	"time"

	"meeting-notes-backend/internal/summary/domain"
	"meeting-notes-backend/pkg/apperror"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding summary documents.
const CollectionName = "summaries"

// summaryDocument is the stored shape.
type summaryDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	OriginalTranscript string             `bson:"originalTranscript"`
	CustomPrompt       string             `bson:"customPrompt"`
	GeneratedSummary   string             `bson:"generatedSummary"`
	EditedSummary      string             `bson:"editedSummary,omitempty"`
	EmailsSent         []string           `bson:"emailsSent"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
}

func (d summaryDocument) toDomain() *domain.Summary {
	emails := d.EmailsSent
	if emails == nil {
		emails = []string{}
	}
	return &domain.Summary{
		ID:                 d.ID.Hex(),
		OriginalTranscript: d.OriginalTranscript,
		CustomPrompt:       d.CustomPrompt,
		GeneratedSummary:   d.GeneratedSummary,
		EditedSummary:      d.EditedSummary,
		EmailsSent:         emails,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

type mongoSummaryRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoSummaryRepository creates a store over db's summaries collection.
func NewMongoSummaryRepository(db *mongo.Database) SummaryRepository {
	return &mongoSummaryRepository{
		coll: db.Collection(CollectionName),
		now:  time.Now,
	}
}

func (r *mongoSummaryRepository) Create(ctx context.Context, s *domain.Summary) error {
	now := r.now().UTC().Truncate(time.Millisecond)
	doc := summaryDocument{
		ID:                 primitive.NewObjectID(),
		OriginalTranscript: s.OriginalTranscript,
		CustomPrompt:       s.CustomPrompt,
		GeneratedSummary:   s.GeneratedSummary,
		EditedSummary:      s.EditedSummary,
		EmailsSent:         append([]string{}, s.EmailsSent...),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return apperror.Internal("Failed to save summary", err)
	}

	s.ID = doc.ID.Hex()
	s.EmailsSent = doc.EmailsSent
	s.CreatedAt = now
	s.UpdatedAt = now
	return nil
}

func (r *mongoSummaryRepository) FindByID(ctx context.Context, id string) (*domain.Summary, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errSummaryNotFound()
	}

	var doc summaryDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errSummaryNotFound()
		}
		return nil, apperror.Internal("Failed to load summary", err)
	}
	return doc.toDomain(), nil
}

func (r *mongoSummaryRepository) Update(ctx context.Context, id string, u domain.SummaryUpdate) (*domain.Summary, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errSummaryNotFound()
	}

	set := bson.M{"updatedAt": r.now().UTC().Truncate(time.Millisecond)}
	if u.EditedSummary != nil {
		set["editedSummary"] = *u.EditedSummary
	}
	update := bson.M{"$set": set}
	if len(u.AppendEmails) > 0 {
		update["$push"] = bson.M{"emailsSent": bson.M{"$each": u.AppendEmails}}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc summaryDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errSummaryNotFound()
		}
		return nil, apperror.Internal("Failed to update summary", err)
	}
	return doc.toDomain(), nil
}
