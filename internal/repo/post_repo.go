package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nartaykz/travellog/internal/domain"
)

func (s *Store) InsertPost(ctx context.Context, p *domain.Post) error {
	_, err := s.colPosts.InsertOne(ctx, p)
	return err
}

func (s *Store) FindPostByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	var p domain.Post
	err := s.colPosts.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPostsByAuthors returns posts authored by any of emails, newest
// first by insertion order, with skip/limit pagination.
func (s *Store) FindPostsByAuthors(ctx context.Context, emails []string, skip, limit int) ([]domain.Post, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	if skip < 0 {
		skip = 0
	}
	cur, err := s.colPosts.Find(ctx,
		bson.M{"post.userEmail": bson.M{"$in": emails}},
		options.Find().
			SetSort(bson.D{{Key: "_id", Value: -1}}).
			SetSkip(int64(skip)).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Post
	for cur.Next(ctx) {
		var p domain.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}
