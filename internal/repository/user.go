package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/collabnest/collabnest-api/internal/model"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByResetToken(ctx context.Context, token string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	ListUsersByName(ctx context.Context, name string) ([]*model.User, error)
	ListUsersByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.User, error)
	UpdateUser(ctx context.Context, id string, params UpdateUserParams) (*model.User, error)
	AddFollowing(ctx context.Context, userID, followID bson.ObjectID) error
	AddFollower(ctx context.Context, userID, followerID bson.ObjectID) error
	RemoveFollowing(ctx context.Context, userID, unfollowID bson.ObjectID) error
	RemoveFollower(ctx context.Context, userID, followerID bson.ObjectID) error
	AddProjectRef(ctx context.Context, userID, projectID bson.ObjectID) error
	RemoveProjectRef(ctx context.Context, userID, projectID bson.ObjectID) error
	SetResetToken(ctx context.Context, userID bson.ObjectID, token string, expiry time.Time) error
	ResetPassword(ctx context.Context, userID bson.ObjectID, passwordHash string) error
}

// UpdateUserParams defines the optional parameters for updating a user.
// Only the fields that are not nil will be updated.
type UpdateUserParams struct {
	Name        *string
	Username    *string
	Email       *string
	Description *string
	Image       *string
	GithubURL   *string
	LinkedInURL *string
	WebsiteURL  *string
}

const userCollection = "users"

type userMongoRepository struct {
	db *mongo.Database
}

// NewUserMongoRepository creates a new MongoDB repository for users. Email and
// name are indexed for the lookup queries but deliberately not unique:
// duplicate emails/usernames are accepted at this layer.
func NewUserMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "forgot_password_token", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.Projects == nil {
		user.Projects = []bson.ObjectID{}
	}
	if user.Followers == nil {
		user.Followers = []bson.ObjectID{}
	}
	if user.Following == nil {
		user.Following = []bson.ObjectID{}
	}

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return user, nil
}

func (r *userMongoRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) GetUserByResetToken(ctx context.Context, token string) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"forgot_password_token": token})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	return r.findUsers(ctx, bson.M{})
}

func (r *userMongoRepository) ListUsersByName(ctx context.Context, name string) ([]*model.User, error) {
	return r.findUsers(ctx, bson.M{"name": name})
}

func (r *userMongoRepository) ListUsersByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}
	return r.findUsers(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *userMongoRepository) findUsers(ctx context.Context, filter bson.M) ([]*model.User, error) {
	cursor, err := r.db.Collection(userCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []*model.User{}
	for cursor.Next(ctx) {
		var user model.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userMongoRepository) UpdateUser(
	ctx context.Context,
	id string,
	params UpdateUserParams,
) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	// Build update query
	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Username != nil {
		updateMap["username"] = *params.Username
	}
	if params.Email != nil {
		updateMap["email"] = *params.Email
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.Image != nil {
		updateMap["image"] = *params.Image
	}
	if params.GithubURL != nil {
		updateMap["github_url"] = *params.GithubURL
	}
	if params.LinkedInURL != nil {
		updateMap["linkedin_url"] = *params.LinkedInURL
	}
	if params.WebsiteURL != nil {
		updateMap["website_url"] = *params.WebsiteURL
	}

	if len(updateMap) == 0 {
		return r.GetUser(ctx, id)
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) AddFollowing(ctx context.Context, userID, followID bson.ObjectID) error {
	return r.addToSet(ctx, userID, "following", followID)
}

func (r *userMongoRepository) AddFollower(ctx context.Context, userID, followerID bson.ObjectID) error {
	return r.addToSet(ctx, userID, "followers", followerID)
}

func (r *userMongoRepository) RemoveFollowing(ctx context.Context, userID, unfollowID bson.ObjectID) error {
	return r.pull(ctx, userID, "following", unfollowID)
}

func (r *userMongoRepository) RemoveFollower(ctx context.Context, userID, followerID bson.ObjectID) error {
	return r.pull(ctx, userID, "followers", followerID)
}

func (r *userMongoRepository) AddProjectRef(ctx context.Context, userID, projectID bson.ObjectID) error {
	return r.addToSet(ctx, userID, "projects", projectID)
}

func (r *userMongoRepository) RemoveProjectRef(ctx context.Context, userID, projectID bson.ObjectID) error {
	return r.pull(ctx, userID, "projects", projectID)
}

func (r *userMongoRepository) addToSet(ctx context.Context, userID bson.ObjectID, field string, ref bson.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{field: ref},
		"$set":      bson.M{"updated_at": time.Now()},
	}

	_, err := r.db.Collection(userCollection).UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}

func (r *userMongoRepository) pull(ctx context.Context, userID bson.ObjectID, field string, ref bson.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{field: ref},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	_, err := r.db.Collection(userCollection).UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}

func (r *userMongoRepository) SetResetToken(
	ctx context.Context,
	userID bson.ObjectID,
	token string,
	expiry time.Time,
) error {
	update := bson.M{
		"$set": bson.M{
			"forgot_password_token":        token,
			"forgot_password_token_expiry": expiry,
			"updated_at":                   time.Now(),
		},
	}

	_, err := r.db.Collection(userCollection).UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}

func (r *userMongoRepository) ResetPassword(
	ctx context.Context,
	userID bson.ObjectID,
	passwordHash string,
) error {
	update := bson.M{
		"$set": bson.M{
			"password":   passwordHash,
			"updated_at": time.Now(),
		},
		"$unset": bson.M{
			"forgot_password_token":        "",
			"forgot_password_token_expiry": "",
		},
	}

	_, err := r.db.Collection(userCollection).UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}
