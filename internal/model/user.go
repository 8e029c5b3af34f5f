package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a member of the platform. Projects, Followers and Following
// hold references to other documents, not embedded copies; the stored Projects
// array is the authoritative record of ownership and is kept in sync on every
// project create and delete.
type User struct {
	ID                        bson.ObjectID   `bson:"_id,omitempty"`
	Name                      string          `bson:"name"`
	Username                  string          `bson:"username"`
	Email                     string          `bson:"email"`
	Password                  *string         `bson:"password"`
	Description               *string         `bson:"description"`
	Image                     *string         `bson:"image"`
	GithubURL                 *string         `bson:"github_url"`
	LinkedInURL               *string         `bson:"linkedin_url"`
	WebsiteURL                *string         `bson:"website_url"`
	ForgotPasswordToken       *string         `bson:"forgot_password_token"`
	ForgotPasswordTokenExpiry *time.Time      `bson:"forgot_password_token_expiry"`
	Projects                  []bson.ObjectID `bson:"projects"`
	Followers                 []bson.ObjectID `bson:"followers"`
	Following                 []bson.ObjectID `bson:"following"`
	CreatedAt                 time.Time       `bson:"created_at"`
	UpdatedAt                 time.Time       `bson:"updated_at"`
}

// IsFollowing reports whether the user's following set contains the given id.
func (u *User) IsFollowing(id bson.ObjectID) bool {
	for _, f := range u.Following {
		if f == id {
			return true
		}
	}
	return false
}
