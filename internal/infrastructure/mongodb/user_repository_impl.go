package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/fitness-auth-api/internal/domain/entity"
	"github.com/oksasatya/fitness-auth-api/internal/domain/repository"
)

type userDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Email              string             `bson:"email"`
	PasswordHash       string             `bson:"passwordHash"`
	UserName           string             `bson:"userName"`
	Age                int                `bson:"age"`
	FitnessGoal        string             `bson:"fitnessGoal"`
	FitnessLevel       string             `bson:"fitnessLevel"`
	SubscriptionStatus string             `bson:"subscriptionStatus"`
	EmailVerified      bool               `bson:"emailVerified"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`

	// omitted once verified so the sparse index skips the document
	PendingEmailVerificationToken string `bson:"pendingEmailVerificationToken,omitempty"`
}

func toDocument(u *entity.User) userDocument {
	return userDocument{
		Email:                         u.Email,
		PasswordHash:                  u.PasswordHash,
		UserName:                      u.UserName,
		Age:                           u.Age,
		FitnessGoal:                   u.FitnessGoal,
		FitnessLevel:                  u.FitnessLevel,
		SubscriptionStatus:            u.SubscriptionStatus,
		EmailVerified:                 u.EmailVerified,
		CreatedAt:                     u.CreatedAt,
		UpdatedAt:                     u.UpdatedAt,
		PendingEmailVerificationToken: u.PendingEmailVerificationToken,
	}
}

func (d userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:                            d.ID.Hex(),
		Email:                         d.Email,
		PasswordHash:                  d.PasswordHash,
		UserName:                      d.UserName,
		Age:                           d.Age,
		FitnessGoal:                   d.FitnessGoal,
		FitnessLevel:                  d.FitnessLevel,
		SubscriptionStatus:            d.SubscriptionStatus,
		EmailVerified:                 d.EmailVerified,
		CreatedAt:                     d.CreatedAt,
		UpdatedAt:                     d.UpdatedAt,
		PendingEmailVerificationToken: d.PendingEmailVerificationToken,
	}
}

type UserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll, now: func() time.Time { return time.Now().UTC() }}
}

// objectID parses a hex id. Malformed ids are reported as not found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := r.now()
	u.CreatedAt, u.UpdatedAt = now, now

	res, err := r.coll.InsertOne(ctx, toDocument(u))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid.Hex()
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := make([]*entity.User, 0)
	for cur.Next(ctx) {
		var doc userDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		users = append(users, doc.toEntity())
	}
	return users, cur.Err()
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, p entity.ProfileUpdate) (*entity.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": r.now()}
	if p.UserName != nil {
		set["userName"] = *p.UserName
	}
	if p.Age != nil {
		set["age"] = *p.Age
	}
	if p.FitnessGoal != nil {
		set["fitnessGoal"] = *p.FitnessGoal
	}
	if p.FitnessLevel != nil {
		set["fitnessLevel"] = *p.FitnessLevel
	}
	if p.SubscriptionStatus != nil {
		set["subscriptionStatus"] = *p.SubscriptionStatus
	}

	var doc userDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"passwordHash": passwordHash, "updatedAt": r.now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ConsumeVerificationToken matches and clears the token in one document update,
// so two concurrent redemptions cannot both succeed.
func (r *UserRepository) ConsumeVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}
	var doc userDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"pendingEmailVerificationToken": token},
		bson.M{
			"$set":   bson.M{"emailVerified": true, "updatedAt": r.now()},
			"$unset": bson.M{"pendingEmailVerificationToken": ""},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
