package queue

import "go.mongodb.org/mongo-driver/bson/primitive"

// Exchange is the topic exchange every travellog event lands on.
const Exchange = "travel.events"

type UserRegistered struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
	Google bool               `json:"google"`
}

type UserFollowed struct {
	FollowerID string `json:"follower_id"`
	TargetID   string `json:"target_id"`
}

type ExperiencePosted struct {
	PostID    string `json:"post_id"`
	UserEmail string `json:"user_email"`
	Images    int    `json:"images"`
}
