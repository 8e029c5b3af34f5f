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

// ProjectRepository defines the interface for project-related database operations.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *model.Project) (*model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context, params FilterProjectsParams) ([]*model.Project, error)
	CountProjects(ctx context.Context, category *string) (int64, error)
	ListProjectsByOwner(ctx context.Context, ownerID bson.ObjectID, limit int64) ([]*model.Project, error)
	ListProjectsByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.Project, error)
	UpdateProject(ctx context.Context, id string, params UpdateProjectParams) (*model.Project, error)
	DeleteProject(ctx context.Context, id string) (*model.Project, error)
}

// UpdateProjectParams defines the optional parameters for updating a project.
// Only the fields that are not nil will be updated.
type UpdateProjectParams struct {
	Title       *string
	Description *string
	Image       *string
	LiveSiteURL *string
	GithubURL   *string
	Category    *string
}

// FilterProjectsParams defines the parameters for filtering and paginating
// projects. A nil Category means no category filter.
type FilterProjectsParams struct {
	Category *string
	Skip     int64
	Limit    int64
}

const projectCollection = "projects"

type projectMongoRepository struct {
	db *mongo.Database
}

// NewProjectMongoRepository creates a new MongoDB repository for projects.
func NewProjectMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ProjectRepository {
	collection := db.Collection(projectCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_by", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create project indexes")
	}

	return &projectMongoRepository{db: db}
}

func (r *projectMongoRepository) CreateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	result, err := r.db.Collection(projectCollection).InsertOne(ctx, project)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		project.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return project, nil
}

func (r *projectMongoRepository) GetProject(ctx context.Context, id string) (*model.Project, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(projectCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var project model.Project
	if err := result.Decode(&project); err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *projectMongoRepository) ListProjects(
	ctx context.Context,
	params FilterProjectsParams,
) ([]*model.Project, error) {
	findOptions := options.Find()

	if params.Skip > 0 {
		findOptions.SetSkip(params.Skip)
	}
	if params.Limit > 0 {
		findOptions.SetLimit(params.Limit)
	}

	filter := bson.M{}
	if params.Category != nil {
		filter["category"] = *params.Category
	}

	return r.findProjects(ctx, filter, findOptions)
}

func (r *projectMongoRepository) CountProjects(ctx context.Context, category *string) (int64, error) {
	filter := bson.M{}
	if category != nil {
		filter["category"] = *category
	}

	return r.db.Collection(projectCollection).CountDocuments(ctx, filter)
}

func (r *projectMongoRepository) ListProjectsByOwner(
	ctx context.Context,
	ownerID bson.ObjectID,
	limit int64,
) ([]*model.Project, error) {
	findOptions := options.Find()
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	return r.findProjects(ctx, bson.M{"created_by": ownerID}, findOptions)
}

func (r *projectMongoRepository) ListProjectsByIDs(
	ctx context.Context,
	ids []bson.ObjectID,
) ([]*model.Project, error) {
	if len(ids) == 0 {
		return []*model.Project{}, nil
	}

	return r.findProjects(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *projectMongoRepository) findProjects(
	ctx context.Context,
	filter bson.M,
	findOptions *options.FindOptionsBuilder,
) ([]*model.Project, error) {
	cursor, err := r.db.Collection(projectCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := []*model.Project{}
	for cursor.Next(ctx) {
		var project model.Project
		if err := cursor.Decode(&project); err != nil {
			return nil, err
		}
		projects = append(projects, &project)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *projectMongoRepository) UpdateProject(
	ctx context.Context,
	id string,
	params UpdateProjectParams,
) (*model.Project, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	// Build update query
	updateMap := bson.M{}
	if params.Title != nil {
		updateMap["title"] = *params.Title
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.Image != nil {
		updateMap["image"] = *params.Image
	}
	if params.LiveSiteURL != nil {
		updateMap["live_site_url"] = *params.LiveSiteURL
	}
	if params.GithubURL != nil {
		updateMap["github_url"] = *params.GithubURL
	}
	if params.Category != nil {
		updateMap["category"] = *params.Category
	}

	if len(updateMap) == 0 {
		return r.GetProject(ctx, id)
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(projectCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var project model.Project
	if err := result.Decode(&project); err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *projectMongoRepository) DeleteProject(ctx context.Context, id string) (*model.Project, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(projectCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var project model.Project
	if err := result.Decode(&project); err != nil {
		return nil, err
	}

	return &project, nil
}
