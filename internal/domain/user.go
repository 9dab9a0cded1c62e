package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the single document behind accounts, profiles and the follow
// graph. Email is the identity key (unique index, stored case-sensitive).
// Followers/Following/Experiences hold hex object ids, mirroring the
// wire format the frontend already speaks.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Email        string             `bson:"email"                    json:"email"`
	PasswordHash string             `bson:"password,omitempty"       json:"-"`
	Name         string             `bson:"name"                     json:"name"`
	Picture      string             `bson:"picture"                  json:"picture"`
	Followers    []string           `bson:"followers"                json:"-"`
	Following    []string           `bson:"following"                json:"-"`
	Location     string             `bson:"location"                 json:"location"`
	Website      string             `bson:"website"                  json:"website"`
	Description  string             `bson:"description"              json:"description"`
	Experiences  []string           `bson:"experiences"              json:"-"`
}

// Summary is the stripped-down shape returned by search, suggestions and
// timeline author enrichment.
type Summary struct {
	ID       primitive.ObjectID `json:"id"`
	Name     string             `json:"name"`
	Picture  string             `json:"picture"`
	Location string             `json:"location,omitempty"`
}

func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Picture: u.Picture, Location: u.Location}
}

// FullInfo is the caller's own profile: counts instead of the raw arrays,
// credentials stripped.
type FullInfo struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	Picture        string `json:"picture"`
	Location       string `json:"location"`
	Website        string `json:"website"`
	Description    string `json:"description"`
	FollowersCount int    `json:"followersCount"`
	FollowingCount int    `json:"followingCount"`
}

func (u *User) FullInfo() FullInfo {
	return FullInfo{
		Email:          u.Email,
		Name:           u.Name,
		Picture:        u.Picture,
		Location:       u.Location,
		Website:        u.Website,
		Description:    u.Description,
		FollowersCount: len(u.Followers),
		FollowingCount: len(u.Following),
	}
}

// PublicProfile is what /user/:id exposes about somebody else: no email,
// no id, no credentials, no experience list.
type PublicProfile struct {
	Name           string `json:"name"`
	Picture        string `json:"picture"`
	Location       string `json:"location"`
	Website        string `json:"website"`
	Description    string `json:"description"`
	FollowersCount int    `json:"followersCount"`
	FollowingCount int    `json:"followingCount"`
}

func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		Name:           u.Name,
		Picture:        u.Picture,
		Location:       u.Location,
		Website:        u.Website,
		Description:    u.Description,
		FollowersCount: len(u.Followers),
		FollowingCount: len(u.Following),
	}
}

// IsFollowing reports membership of target in the user's following list.
func (u *User) IsFollowing(targetID string) bool {
	for _, id := range u.Following {
		if id == targetID {
			return true
		}
	}
	return false
}

// ProfileUpdate carries the unconditional profile overwrite: omitted
// request fields land here as empty strings and are written as such.
type ProfileUpdate struct {
	Name        string
	Location    string
	Website     string
	Description string
	Picture     string
}
