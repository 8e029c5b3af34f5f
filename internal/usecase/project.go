package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/collabnest/collabnest-api/internal/model"
	"github.com/collabnest/collabnest-api/internal/repository"
)

// CategoryDiscover is the sentinel category that disables category filtering
// on project listings.
const CategoryDiscover = "Discover"

const defaultProjectPageSize = 8

// ProjectUsecase defines the business logic for portfolio projects.
type ProjectUsecase interface {
	// ListProjects returns one page of projects. Page and limit are 1-indexed
	// positive values; out-of-range values fall back to page 1 and the default
	// page size. A category of CategoryDiscover lists across all categories.
	ListProjects(ctx context.Context, page, limit int64, category string) (*ProjectPage, error)

	// GetProject returns the project with the given id, or (nil, nil) when no
	// such project exists.
	GetProject(ctx context.Context, id string) (*model.Project, error)

	// ListUserProjects returns up to limit projects owned by the given user.
	ListUserProjects(ctx context.Context, userID string, limit int64) ([]*model.Project, error)

	// ListProjectsByIDs resolves a set of project references.
	ListProjectsByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.Project, error)

	// CreateProject persists a new project for an existing owner and appends
	// its id to the owner's project set.
	CreateProject(ctx context.Context, params CreateProjectParams) (*model.Project, error)

	UpdateProject(ctx context.Context, id string, params repository.UpdateProjectParams) (*model.Project, error)

	// DeleteProject removes the project and cleans the owner's project set.
	// It reports true only when the project existed and was removed; cleanup
	// failures are logged, never surfaced.
	DeleteProject(ctx context.Context, id string) bool
}

// ProjectPage is one page of a project listing together with the totals the
// listing reports.
type ProjectPage struct {
	Projects      []*model.Project
	TotalProjects int64
	TotalPages    int64
	CurrentPage   int64
}

// CreateProjectParams defines the fields accepted at project creation.
type CreateProjectParams struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Image       string `validate:"required"`
	LiveSiteURL string `validate:"required"`
	GithubURL   string `validate:"required"`
	Category    string `validate:"required"`
	CreatedBy   string `validate:"required"`
}

type projectUsecase struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	logger      *zerolog.Logger
}

// NewProjectUsecase creates a new instance of ProjectUsecase.
func NewProjectUsecase(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	logger *zerolog.Logger,
) ProjectUsecase {
	return &projectUsecase{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (u *projectUsecase) ListProjects(
	ctx context.Context,
	page, limit int64,
	category string,
) (*ProjectPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultProjectPageSize
	}

	var categoryFilter *string
	if category != CategoryDiscover {
		categoryFilter = &category
	}

	projects, err := u.projectRepo.ListProjects(ctx, repository.FilterProjectsParams{
		Category: categoryFilter,
		Skip:     (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	total, err := u.projectRepo.CountProjects(ctx, categoryFilter)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	return &ProjectPage{
		Projects:      projects,
		TotalProjects: total,
		TotalPages:    totalPages,
		CurrentPage:   page,
	}, nil
}

func (u *projectUsecase) GetProject(ctx context.Context, id string) (*model.Project, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, nil
	}

	project, err := u.projectRepo.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return project, nil
}

func (u *projectUsecase) ListUserProjects(
	ctx context.Context,
	userID string,
	limit int64,
) ([]*model.Project, error) {
	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return []*model.Project{}, nil
	}

	if limit < 1 {
		limit = defaultProjectPageSize
	}

	return u.projectRepo.ListProjectsByOwner(ctx, ownerID, limit)
}

func (u *projectUsecase) ListProjectsByIDs(
	ctx context.Context,
	ids []bson.ObjectID,
) ([]*model.Project, error) {
	return u.projectRepo.ListProjectsByIDs(ctx, ids)
}

func (u *projectUsecase) CreateProject(
	ctx context.Context,
	params CreateProjectParams,
) (*model.Project, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	if _, err := bson.ObjectIDFromHex(params.CreatedBy); err != nil {
		return nil, ErrUserNotFound
	}

	owner, err := u.userRepo.GetUser(ctx, params.CreatedBy)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	project, err := u.projectRepo.CreateProject(ctx, &model.Project{
		Title:       params.Title,
		Description: params.Description,
		Image:       params.Image,
		LiveSiteURL: params.LiveSiteURL,
		GithubURL:   params.GithubURL,
		Category:    params.Category,
		CreatedBy:   owner.ID,
	})
	if err != nil {
		return nil, err
	}

	// Second write on the owner record; not atomic with the insert above.
	if err := u.userRepo.AddProjectRef(ctx, owner.ID, project.ID); err != nil {
		return nil, err
	}

	return project, nil
}

func (u *projectUsecase) UpdateProject(
	ctx context.Context,
	id string,
	params repository.UpdateProjectParams,
) (*model.Project, error) {
	project, err := u.projectRepo.UpdateProject(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	return project, nil
}

func (u *projectUsecase) DeleteProject(ctx context.Context, id string) bool {
	project, err := u.projectRepo.DeleteProject(ctx, id)
	if err != nil {
		u.logger.Error().Err(err).Str("project_id", id).Msg("failed to delete project")
		return false
	}

	if err := u.userRepo.RemoveProjectRef(ctx, project.CreatedBy, project.ID); err != nil {
		u.logger.Error().Err(err).
			Str("project_id", id).
			Str("owner_id", project.CreatedBy.Hex()).
			Msg("failed to remove project reference from owner")
		return false
	}

	return true
}
