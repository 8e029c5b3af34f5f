package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Project represents a portfolio entry published by a user. Every project has
// exactly one owner, referenced by CreatedBy.
type Project struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	Image       string        `bson:"image"`
	LiveSiteURL string        `bson:"live_site_url"`
	GithubURL   string        `bson:"github_url"`
	Category    string        `bson:"category"`
	CreatedBy   bson.ObjectID `bson:"created_by"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}
