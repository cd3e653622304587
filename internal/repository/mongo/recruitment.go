package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"recruitment-tracker/internal/domain"
	"recruitment-tracker/internal/logger"
	"recruitment-tracker/internal/repository"
)

type recruitmentDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	HSTLMember      string             `bson:"hstlMember"`
	RecruitedMember string             `bson:"recruitedMember"`
	PaidOut         string             `bson:"paidOut"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

func (d recruitmentDocument) toDomain() domain.Recruitment {
	status := domain.PayoutStatus(d.PaidOut)
	if !status.Valid() {
		// Documents written before the status was enforced default to Pending.
		status = domain.PayoutStatusPending
	}
	return domain.Recruitment{
		ID:              d.ID.Hex(),
		HSTLMember:      d.HSTLMember,
		RecruitedMember: d.RecruitedMember,
		PaidOut:         status,
		CreatedAt:       d.CreatedAt,
	}
}

type recruitmentRepository struct {
	coll *mongo.Collection
}

func NewRecruitmentRepository(coll *mongo.Collection) repository.RecruitmentRepository {
	return &recruitmentRepository{coll: coll}
}

func (r *recruitmentRepository) List(ctx context.Context) ([]domain.Recruitment, error) {
	logger.StoreCall("find", r.coll.Name())
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		logger.StoreResult("find", 0, err)
		return nil, err
	}

	var docs []recruitmentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		logger.StoreResult("find", 0, err)
		return nil, err
	}

	out := make([]domain.Recruitment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	logger.StoreResult("find", int64(len(out)), nil)
	return out, nil
}

func (r *recruitmentRepository) Create(ctx context.Context, rec *domain.Recruitment) error {
	doc := recruitmentDocument{
		ID:              primitive.NewObjectID(),
		HSTLMember:      rec.HSTLMember,
		RecruitedMember: rec.RecruitedMember,
		PaidOut:         string(rec.PaidOut),
		CreatedAt:       rec.CreatedAt,
	}
	logger.StoreCall("insertOne", r.coll.Name())
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		logger.StoreResult("insertOne", 0, err)
		return err
	}
	rec.ID = doc.ID.Hex()
	logger.StoreResult("insertOne", 1, nil)
	return nil
}

func (r *recruitmentRepository) UpdatePayout(ctx context.Context, id string, status domain.PayoutStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	logger.StoreCall("updateOne", r.coll.Name(), "id", id)
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"paidOut": string(status)}},
	)
	if err != nil {
		logger.StoreResult("updateOne", 0, err)
		return err
	}
	logger.StoreResult("updateOne", res.MatchedCount, nil)
	return nil
}

func (r *recruitmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}
	logger.StoreCall("deleteOne", r.coll.Name(), "id", id)
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		logger.StoreResult("deleteOne", 0, err)
		return err
	}
	logger.StoreResult("deleteOne", res.DeletedCount, nil)
	return nil
}
