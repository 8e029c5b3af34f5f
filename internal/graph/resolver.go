// Package graph binds the GraphQL schema to the usecase layer.
package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/collabnest/collabnest-api/internal/repository"
	"github.com/collabnest/collabnest-api/internal/usecase"
)

// Resolver is the root resolver for GraphQL queries and mutations.
type Resolver struct {
	users         usecase.UserUsecase
	projects      usecase.ProjectUsecase
	passwordReset usecase.PasswordResetUsecase
}

// NewResolver creates a new root resolver with the given dependencies.
func NewResolver(
	users usecase.UserUsecase,
	projects usecase.ProjectUsecase,
	passwordReset usecase.PasswordResetUsecase,
) *Resolver {
	return &Resolver{
		users:         users,
		projects:      projects,
		passwordReset: passwordReset,
	}
}

// CreateUserInput mirrors the CreateUserInput schema type.
type CreateUserInput struct {
	Name     string
	Username string
	Email    string
	Password *string
	Image    *string
}

// UpdateUserInput mirrors the UpdateUserInput schema type. Absent fields are
// left unchanged.
type UpdateUserInput struct {
	Name        *string
	Username    *string
	Email       *string
	Description *string
	Image       *string
	GithubURL   *string
	LinkedInURL *string
	WebsiteURL  *string
}

// CreateProjectInput mirrors the CreateProjectInput schema type.
type CreateProjectInput struct {
	Title       string
	Description string
	Image       string
	LiveSiteURL string
	GithubURL   string
	Category    string
	CreatedBy   graphql.ID
}

// UpdateProjectInput mirrors the UpdateProjectInput schema type.
type UpdateProjectInput struct {
	Title       *string
	Description *string
	Image       *string
	LiveSiteURL *string
	GithubURL   *string
	Category    *string
}

// Users resolves the users query.
func (r *Resolver) Users(ctx context.Context) ([]*UserResolver, error) {
	users, err := r.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	return r.wrapUsers(users), nil
}

// User resolves the user query. A missing user resolves to null, not an error.
func (r *Resolver) User(ctx context.Context, args struct{ ID graphql.ID }) (*UserResolver, error) {
	user, err := r.users.GetUser(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}

	return r.wrapUser(user), nil
}

// UserByEmail resolves the userByEmail query by exact email match.
func (r *Resolver) UserByEmail(ctx context.Context, args struct{ Email string }) (*UserResolver, error) {
	user, err := r.users.GetUserByEmail(ctx, args.Email)
	if err != nil {
		return nil, err
	}

	return r.wrapUser(user), nil
}

// UserByResetToken resolves the userByResetToken query by exact token match.
func (r *Resolver) UserByResetToken(ctx context.Context, args struct{ Token string }) (*UserResolver, error) {
	user, err := r.users.GetUserByResetToken(ctx, args.Token)
	if err != nil {
		return nil, err
	}

	return r.wrapUser(user), nil
}

// UsernamesByName resolves the usernamesByName query.
func (r *Resolver) UsernamesByName(ctx context.Context, args struct{ Name string }) ([]string, error) {
	return r.users.ListUsernamesByName(ctx, args.Name)
}

// Followers resolves the followers query; an unknown user yields an empty list.
func (r *Resolver) Followers(ctx context.Context, args struct{ UserID graphql.ID }) ([]*UserResolver, error) {
	users, err := r.users.ListFollowers(ctx, string(args.UserID))
	if err != nil {
		return nil, err
	}

	return r.wrapUsers(users), nil
}

// Following resolves the following query; an unknown user yields an empty list.
func (r *Resolver) Following(ctx context.Context, args struct{ UserID graphql.ID }) ([]*UserResolver, error) {
	users, err := r.users.ListFollowing(ctx, string(args.UserID))
	if err != nil {
		return nil, err
	}

	return r.wrapUsers(users), nil
}

// Projects resolves the paginated projects query.
func (r *Resolver) Projects(ctx context.Context, args struct {
	Page     *int32
	Limit    *int32
	Category string
}) (*ProjectPageResolver, error) {
	var page, limit int64 = 1, 0
	if args.Page != nil {
		page = int64(*args.Page)
	}
	if args.Limit != nil {
		limit = int64(*args.Limit)
	}

	result, err := r.projects.ListProjects(ctx, page, limit, args.Category)
	if err != nil {
		return nil, err
	}

	return &ProjectPageResolver{page: result, root: r}, nil
}

// Project resolves the project query. A missing project resolves to null.
func (r *Resolver) Project(ctx context.Context, args struct{ ID graphql.ID }) (*ProjectResolver, error) {
	project, err := r.projects.GetProject(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}

	return r.wrapProject(project), nil
}

// UserProjects resolves the userProjects query.
func (r *Resolver) UserProjects(ctx context.Context, args struct {
	UserID graphql.ID
	Limit  *int32
}) ([]*ProjectResolver, error) {
	var limit int64
	if args.Limit != nil {
		limit = int64(*args.Limit)
	}

	projects, err := r.projects.ListUserProjects(ctx, string(args.UserID), limit)
	if err != nil {
		return nil, err
	}

	return r.wrapProjects(projects), nil
}

// CreateUser resolves the createUser mutation.
func (r *Resolver) CreateUser(ctx context.Context, args struct{ Input CreateUserInput }) (*UserResolver, error) {
	user, err := r.users.CreateUser(ctx, usecase.CreateUserParams{
		Name:     args.Input.Name,
		Username: args.Input.Username,
		Email:    args.Input.Email,
		Password: args.Input.Password,
		Image:    args.Input.Image,
	})
	if err != nil {
		return nil, err
	}

	return r.wrapUser(user), nil
}

// UpdateUser resolves the updateUser mutation.
func (r *Resolver) UpdateUser(ctx context.Context, args struct {
	ID    graphql.ID
	Input UpdateUserInput
}) (*UserResolver, error) {
	user, err := r.users.UpdateUser(ctx, string(args.ID), repository.UpdateUserParams{
		Name:        args.Input.Name,
		Username:    args.Input.Username,
		Email:       args.Input.Email,
		Description: args.Input.Description,
		Image:       args.Input.Image,
		GithubURL:   args.Input.GithubURL,
		LinkedInURL: args.Input.LinkedInURL,
		WebsiteURL:  args.Input.WebsiteURL,
	})
	if err != nil {
		return nil, err
	}

	return r.wrapUser(user), nil
}

// FollowUser resolves the followUser mutation.
func (r *Resolver) FollowUser(ctx context.Context, args struct {
	UserID   graphql.ID
	FollowID graphql.ID
}) (*UserResolver, error) {
	user, err := r.users.FollowUser(ctx, string(args.UserID), string(args.FollowID))
	if err != nil {
		return nil, err
	}

	return r.wrapUser(user), nil
}

// UnfollowUser resolves the unfollowUser mutation.
func (r *Resolver) UnfollowUser(ctx context.Context, args struct {
	UserID     graphql.ID
	UnfollowID graphql.ID
}) (*UserResolver, error) {
	user, err := r.users.UnfollowUser(ctx, string(args.UserID), string(args.UnfollowID))
	if err != nil {
		return nil, err
	}

	return r.wrapUser(user), nil
}

// CreateProject resolves the createProject mutation.
func (r *Resolver) CreateProject(ctx context.Context, args struct{ Input CreateProjectInput }) (*ProjectResolver, error) {
	project, err := r.projects.CreateProject(ctx, usecase.CreateProjectParams{
		Title:       args.Input.Title,
		Description: args.Input.Description,
		Image:       args.Input.Image,
		LiveSiteURL: args.Input.LiveSiteURL,
		GithubURL:   args.Input.GithubURL,
		Category:    args.Input.Category,
		CreatedBy:   string(args.Input.CreatedBy),
	})
	if err != nil {
		return nil, err
	}

	return r.wrapProject(project), nil
}

// UpdateProject resolves the updateProject mutation.
func (r *Resolver) UpdateProject(ctx context.Context, args struct {
	ID    graphql.ID
	Input UpdateProjectInput
}) (*ProjectResolver, error) {
	project, err := r.projects.UpdateProject(ctx, string(args.ID), repository.UpdateProjectParams{
		Title:       args.Input.Title,
		Description: args.Input.Description,
		Image:       args.Input.Image,
		LiveSiteURL: args.Input.LiveSiteURL,
		GithubURL:   args.Input.GithubURL,
		Category:    args.Input.Category,
	})
	if err != nil {
		return nil, err
	}

	return r.wrapProject(project), nil
}

// DeleteProject resolves the deleteProject mutation. Failures are reported as
// false, never as a GraphQL error.
func (r *Resolver) DeleteProject(ctx context.Context, args struct{ ID graphql.ID }) bool {
	return r.projects.DeleteProject(ctx, string(args.ID))
}

// RequestPasswordReset resolves the requestPasswordReset mutation.
func (r *Resolver) RequestPasswordReset(ctx context.Context, args struct{ Email string }) (bool, error) {
	if err := r.passwordReset.RequestPasswordReset(ctx, args.Email); err != nil {
		return false, err
	}

	return true, nil
}

// ResetPassword resolves the resetPassword mutation.
func (r *Resolver) ResetPassword(ctx context.Context, args struct {
	Token       string
	NewPassword string
}) (bool, error) {
	if err := r.passwordReset.ResetPassword(ctx, args.Token, args.NewPassword); err != nil {
		return false, err
	}

	return true, nil
}
