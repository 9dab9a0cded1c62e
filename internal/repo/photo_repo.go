package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nartaykz/travellog/internal/domain"
)

// InsertPhoto stores a data URI as an immutable photo document and
// returns its id.
func (s *Store) InsertPhoto(ctx context.Context, dataURI string) (primitive.ObjectID, error) {
	res, err := s.colPhotos.InsertOne(ctx, bson.M{"image": dataURI})
	if err != nil {
		return primitive.NilObjectID, err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

func (s *Store) FindPhotoByID(ctx context.Context, id primitive.ObjectID) (*domain.Photo, error) {
	var p domain.Photo
	err := s.colPhotos.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
