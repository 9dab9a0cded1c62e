package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post wraps a user-authored experience. The body is schemaless by
// contract: whatever the client sent, plus the system-stamped fields
// below. postId equals the document's own object id in hex, so the
// owner's experiences array and delete-by-id compare like for like.
type Post struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Body map[string]any     `bson:"post" json:"post"`
}

// System-stamped body fields.
const (
	FieldDatePosted = "datePosted"
	FieldPostID     = "postId"
	FieldUserEmail  = "userEmail"
	FieldImages     = "images"
)

// NewPost stamps body with the system fields and a fresh document id.
func NewPost(body map[string]any, ownerEmail string, now time.Time) *Post {
	id := primitive.NewObjectID()
	body[FieldDatePosted] = now.UTC()
	body[FieldPostID] = id.Hex()
	body[FieldUserEmail] = ownerEmail
	return &Post{ID: id, Body: body}
}

// OwnerEmail returns the stamped author email, if present.
func (p *Post) OwnerEmail() string {
	s, _ := p.Body[FieldUserEmail].(string)
	return s
}
