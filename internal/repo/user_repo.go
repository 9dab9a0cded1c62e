package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nartaykz/travellog/internal/domain"
)

// CreateUser inserts u and fills in its id. Duplicate email resolves to
// ErrEmailTaken via the unique index, even under concurrent signups.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	res, err := s.colUsers.InsertOne(ctx, u)
	if IsDup(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// FindUserByEmail returns (nil, nil) when no user carries that email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile overwrites the mutable profile fields unconditionally —
// there are deliberately no partial-update semantics here.
func (s *Store) UpdateProfile(ctx context.Context, email string, p domain.ProfileUpdate) error {
	_, err := s.colUsers.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{
		"name":        p.Name,
		"location":    p.Location,
		"website":     p.Website,
		"description": p.Description,
		"picture":     p.Picture,
	}})
	return err
}

func (s *Store) UpdatePassword(ctx context.Context, email, hash string) error {
	_, err := s.colUsers.UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$set": bson.M{"password": hash}})
	return err
}

// AddFollow records follower→target as two single-document atomic edits:
// $addToSet into the follower's following, then into the target's
// followers. Returns false when the edge already existed (no-op).
func (s *Store) AddFollow(ctx context.Context, follower, target primitive.ObjectID) (bool, error) {
	res, err := s.colUsers.UpdateOne(ctx, bson.M{"_id": follower},
		bson.M{"$addToSet": bson.M{"following": target.Hex()}})
	if err != nil {
		return false, err
	}
	if res.ModifiedCount == 0 {
		return false, nil
	}
	_, err = s.colUsers.UpdateOne(ctx, bson.M{"_id": target},
		bson.M{"$addToSet": bson.M{"followers": follower.Hex()}})
	return true, err
}

// RemoveFollow mirrors AddFollow with $pull. Absent edge is a no-op.
func (s *Store) RemoveFollow(ctx context.Context, follower, target primitive.ObjectID) (bool, error) {
	res, err := s.colUsers.UpdateOne(ctx, bson.M{"_id": follower},
		bson.M{"$pull": bson.M{"following": target.Hex()}})
	if err != nil {
		return false, err
	}
	if res.ModifiedCount == 0 {
		return false, nil
	}
	_, err = s.colUsers.UpdateOne(ctx, bson.M{"_id": target},
		bson.M{"$pull": bson.M{"followers": follower.Hex()}})
	return true, err
}

// AppendExperience pushes the post id onto the owner's list and returns
// the updated list (insertion order, oldest first).
func (s *Store) AppendExperience(ctx context.Context, email, postID string) ([]string, error) {
	var u domain.User
	err := s.colUsers.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$push": bson.M{"experiences": postID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u.Experiences, nil
}

// RemoveExperience pulls the post id from the owner's list and returns the
// truncated list. The post document itself is left in place.
func (s *Store) RemoveExperience(ctx context.Context, email, postID string) ([]string, error) {
	var u domain.User
	err := s.colUsers.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$pull": bson.M{"experiences": postID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u.Experiences, nil
}

// SearchUsers matches names by case-insensitive substring regex.
func (s *Store) SearchUsers(ctx context.Context, name string) ([]domain.User, error) {
	cur, err := s.colUsers.Find(ctx, bson.M{
		"name": bson.M{"$regex": primitive.Regex{Pattern: name, Options: "i"}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeUsers(ctx, cur)
}

// RandomUsers samples n users other than the caller.
func (s *Store) RandomUsers(ctx context.Context, excludeEmail string, n int) ([]domain.User, error) {
	cur, err := s.colUsers.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"email": bson.M{"$ne": excludeEmail}}}},
		{{Key: "$sample", Value: bson.M{"size": n}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeUsers(ctx, cur)
}

// FindUsersByIDs loads the given users in one query.
func (s *Store) FindUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.colUsers.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeUsers(ctx, cur)
}

func decodeUsers(ctx context.Context, cur *mongo.Cursor) ([]domain.User, error) {
	var out []domain.User
	for cur.Next(ctx) {
		var u domain.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, cur.Err()
}
