package graph

import (
	"context"
	"time"

	"github.com/graph-gophers/graphql-go"

	"github.com/collabnest/collabnest-api/internal/model"
)

// UserResolver resolves the User schema type. Relationship fields (projects,
// followers, following) are resolved lazily from the stored reference sets.
type UserResolver struct {
	user *model.User
	root *Resolver
}

func (r *Resolver) wrapUser(user *model.User) *UserResolver {
	if user == nil {
		return nil
	}
	return &UserResolver{user: user, root: r}
}

func (r *Resolver) wrapUsers(users []*model.User) []*UserResolver {
	resolvers := make([]*UserResolver, 0, len(users))
	for _, user := range users {
		resolvers = append(resolvers, r.wrapUser(user))
	}
	return resolvers
}

func (r *UserResolver) ID() graphql.ID {
	return graphql.ID(r.user.ID.Hex())
}

func (r *UserResolver) Name() string {
	return r.user.Name
}

func (r *UserResolver) Username() string {
	return r.user.Username
}

func (r *UserResolver) Email() string {
	return r.user.Email
}

func (r *UserResolver) Password() *string {
	return r.user.Password
}

func (r *UserResolver) Image() *string {
	return r.user.Image
}

func (r *UserResolver) Description() *string {
	return r.user.Description
}

func (r *UserResolver) GithubURL() *string {
	return r.user.GithubURL
}

func (r *UserResolver) LinkedInURL() *string {
	return r.user.LinkedInURL
}

func (r *UserResolver) WebsiteURL() *string {
	return r.user.WebsiteURL
}

func (r *UserResolver) ForgotPasswordToken() *string {
	return r.user.ForgotPasswordToken
}

func (r *UserResolver) ForgotPasswordTokenExpiry() *string {
	if r.user.ForgotPasswordTokenExpiry == nil {
		return nil
	}
	expiry := r.user.ForgotPasswordTokenExpiry.Format(time.RFC3339)
	return &expiry
}

func (r *UserResolver) Following(ctx context.Context) ([]*UserResolver, error) {
	users, err := r.root.users.ListFollowing(ctx, r.user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return r.root.wrapUsers(users), nil
}

func (r *UserResolver) Followers(ctx context.Context) ([]*UserResolver, error) {
	users, err := r.root.users.ListFollowers(ctx, r.user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return r.root.wrapUsers(users), nil
}

func (r *UserResolver) Projects(ctx context.Context) ([]*ProjectResolver, error) {
	projects, err := r.root.projects.ListProjectsByIDs(ctx, r.user.Projects)
	if err != nil {
		return nil, err
	}

	return r.root.wrapProjects(projects), nil
}
