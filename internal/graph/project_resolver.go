package graph

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"github.com/collabnest/collabnest-api/internal/model"
	"github.com/collabnest/collabnest-api/internal/usecase"
)

// ProjectResolver resolves the Project schema type.
type ProjectResolver struct {
	project *model.Project
	root    *Resolver
}

func (r *Resolver) wrapProject(project *model.Project) *ProjectResolver {
	if project == nil {
		return nil
	}
	return &ProjectResolver{project: project, root: r}
}

func (r *Resolver) wrapProjects(projects []*model.Project) []*ProjectResolver {
	resolvers := make([]*ProjectResolver, 0, len(projects))
	for _, project := range projects {
		resolvers = append(resolvers, r.wrapProject(project))
	}
	return resolvers
}

func (r *ProjectResolver) ID() graphql.ID {
	return graphql.ID(r.project.ID.Hex())
}

func (r *ProjectResolver) Title() string {
	return r.project.Title
}

func (r *ProjectResolver) Description() string {
	return r.project.Description
}

func (r *ProjectResolver) Image() string {
	return r.project.Image
}

func (r *ProjectResolver) LiveSiteURL() string {
	return r.project.LiveSiteURL
}

func (r *ProjectResolver) GithubURL() string {
	return r.project.GithubURL
}

func (r *ProjectResolver) Category() string {
	return r.project.Category
}

// CreatedBy resolves the project's owner. The schema declares it non-null, so
// a dangling owner reference surfaces as an error.
func (r *ProjectResolver) CreatedBy(ctx context.Context) (*UserResolver, error) {
	owner, err := r.root.users.GetUser(ctx, r.project.CreatedBy.Hex())
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, usecase.ErrUserNotFound
	}

	return r.root.wrapUser(owner), nil
}

// ProjectPageResolver resolves the ProjectPage schema type.
type ProjectPageResolver struct {
	page *usecase.ProjectPage
	root *Resolver
}

func (r *ProjectPageResolver) Projects() []*ProjectResolver {
	return r.root.wrapProjects(r.page.Projects)
}

func (r *ProjectPageResolver) TotalProjects() int32 {
	return int32(r.page.TotalProjects)
}

func (r *ProjectPageResolver) TotalPages() int32 {
	return int32(r.page.TotalPages)
}

func (r *ProjectPageResolver) CurrentPage() int32 {
	return int32(r.page.CurrentPage)
}
