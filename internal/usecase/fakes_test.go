package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/collabnest/collabnest-api/internal/model"
	"github.com/collabnest/collabnest-api/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository with the same not-found and
// set-membership semantics as the Mongo implementation. Documents are stored
// in insertion order and reads return copies.
type fakeUserRepo struct {
	users []*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (r *fakeUserRepo) find(id bson.ObjectID) *model.User {
	for _, u := range r.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func copyUser(u *model.User) *model.User {
	c := *u
	c.Projects = append([]bson.ObjectID{}, u.Projects...)
	c.Followers = append([]bson.ObjectID{}, u.Followers...)
	c.Following = append([]bson.ObjectID{}, u.Following...)
	return &c
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	user.ID = bson.NewObjectID()
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
	r.users = append(r.users, copyUser(user))
	return user, nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	if u := r.find(objectID); u != nil {
		return copyUser(u), nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) GetUserByResetToken(_ context.Context, token string) (*model.User, error) {
	for _, u := range r.users {
		if u.ForgotPasswordToken != nil && *u.ForgotPasswordToken == token {
			return copyUser(u), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) ListUsers(_ context.Context) ([]*model.User, error) {
	users := []*model.User{}
	for _, u := range r.users {
		users = append(users, copyUser(u))
	}
	return users, nil
}

func (r *fakeUserRepo) ListUsersByName(_ context.Context, name string) ([]*model.User, error) {
	users := []*model.User{}
	for _, u := range r.users {
		if u.Name == name {
			users = append(users, copyUser(u))
		}
	}
	return users, nil
}

func (r *fakeUserRepo) ListUsersByIDs(_ context.Context, ids []bson.ObjectID) ([]*model.User, error) {
	users := []*model.User{}
	for _, u := range r.users {
		for _, id := range ids {
			if u.ID == id {
				users = append(users, copyUser(u))
				break
			}
		}
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateUser(
	ctx context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	u := r.find(objectID)
	if u == nil {
		return nil, mongo.ErrNoDocuments
	}
	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Username != nil {
		u.Username = *params.Username
	}
	if params.Email != nil {
		u.Email = *params.Email
	}
	if params.Description != nil {
		u.Description = params.Description
	}
	if params.Image != nil {
		u.Image = params.Image
	}
	if params.GithubURL != nil {
		u.GithubURL = params.GithubURL
	}
	if params.LinkedInURL != nil {
		u.LinkedInURL = params.LinkedInURL
	}
	if params.WebsiteURL != nil {
		u.WebsiteURL = params.WebsiteURL
	}
	u.UpdatedAt = time.Now()
	return copyUser(u), nil
}

func addRef(set []bson.ObjectID, ref bson.ObjectID) []bson.ObjectID {
	for _, id := range set {
		if id == ref {
			return set
		}
	}
	return append(set, ref)
}

func removeRef(set []bson.ObjectID, ref bson.ObjectID) []bson.ObjectID {
	out := set[:0]
	for _, id := range set {
		if id != ref {
			out = append(out, id)
		}
	}
	return out
}

func (r *fakeUserRepo) AddFollowing(_ context.Context, userID, followID bson.ObjectID) error {
	if u := r.find(userID); u != nil {
		u.Following = addRef(u.Following, followID)
	}
	return nil
}

func (r *fakeUserRepo) AddFollower(_ context.Context, userID, followerID bson.ObjectID) error {
	if u := r.find(userID); u != nil {
		u.Followers = addRef(u.Followers, followerID)
	}
	return nil
}

func (r *fakeUserRepo) RemoveFollowing(_ context.Context, userID, unfollowID bson.ObjectID) error {
	if u := r.find(userID); u != nil {
		u.Following = removeRef(u.Following, unfollowID)
	}
	return nil
}

func (r *fakeUserRepo) RemoveFollower(_ context.Context, userID, followerID bson.ObjectID) error {
	if u := r.find(userID); u != nil {
		u.Followers = removeRef(u.Followers, followerID)
	}
	return nil
}

func (r *fakeUserRepo) AddProjectRef(_ context.Context, userID, projectID bson.ObjectID) error {
	if u := r.find(userID); u != nil {
		u.Projects = addRef(u.Projects, projectID)
	}
	return nil
}

func (r *fakeUserRepo) RemoveProjectRef(_ context.Context, userID, projectID bson.ObjectID) error {
	if u := r.find(userID); u != nil {
		u.Projects = removeRef(u.Projects, projectID)
	}
	return nil
}

func (r *fakeUserRepo) SetResetToken(_ context.Context, userID bson.ObjectID, token string, expiry time.Time) error {
	if u := r.find(userID); u != nil {
		u.ForgotPasswordToken = &token
		u.ForgotPasswordTokenExpiry = &expiry
	}
	return nil
}

func (r *fakeUserRepo) ResetPassword(_ context.Context, userID bson.ObjectID, passwordHash string) error {
	if u := r.find(userID); u != nil {
		u.Password = &passwordHash
		u.ForgotPasswordToken = nil
		u.ForgotPasswordTokenExpiry = nil
	}
	return nil
}

// fakeProjectRepo is an in-memory ProjectRepository preserving insertion order
// so pagination is deterministic.
type fakeProjectRepo struct {
	projects []*model.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{}
}

func copyProject(p *model.Project) *model.Project {
	c := *p
	return &c
}

func (r *fakeProjectRepo) matching(category *string) []*model.Project {
	out := []*model.Project{}
	for _, p := range r.projects {
		if category == nil || p.Category == *category {
			out = append(out, p)
		}
	}
	return out
}

func (r *fakeProjectRepo) CreateProject(_ context.Context, project *model.Project) (*model.Project, error) {
	project.ID = bson.NewObjectID()
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	r.projects = append(r.projects, copyProject(project))
	return project, nil
}

func (r *fakeProjectRepo) GetProject(_ context.Context, id string) (*model.Project, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	for _, p := range r.projects {
		if p.ID == objectID {
			return copyProject(p), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeProjectRepo) ListProjects(
	_ context.Context,
	params repository.FilterProjectsParams,
) ([]*model.Project, error) {
	matching := r.matching(params.Category)

	if params.Skip >= int64(len(matching)) {
		return []*model.Project{}, nil
	}
	matching = matching[params.Skip:]

	if params.Limit > 0 && params.Limit < int64(len(matching)) {
		matching = matching[:params.Limit]
	}

	out := []*model.Project{}
	for _, p := range matching {
		out = append(out, copyProject(p))
	}
	return out, nil
}

func (r *fakeProjectRepo) CountProjects(_ context.Context, category *string) (int64, error) {
	return int64(len(r.matching(category))), nil
}

func (r *fakeProjectRepo) ListProjectsByOwner(
	_ context.Context,
	ownerID bson.ObjectID,
	limit int64,
) ([]*model.Project, error) {
	out := []*model.Project{}
	for _, p := range r.projects {
		if p.CreatedBy == ownerID {
			out = append(out, copyProject(p))
			if limit > 0 && int64(len(out)) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) ListProjectsByIDs(_ context.Context, ids []bson.ObjectID) ([]*model.Project, error) {
	out := []*model.Project{}
	for _, p := range r.projects {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, copyProject(p))
				break
			}
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) UpdateProject(
	_ context.Context,
	id string,
	params repository.UpdateProjectParams,
) (*model.Project, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	for _, p := range r.projects {
		if p.ID != objectID {
			continue
		}
		if params.Title != nil {
			p.Title = *params.Title
		}
		if params.Description != nil {
			p.Description = *params.Description
		}
		if params.Image != nil {
			p.Image = *params.Image
		}
		if params.LiveSiteURL != nil {
			p.LiveSiteURL = *params.LiveSiteURL
		}
		if params.GithubURL != nil {
			p.GithubURL = *params.GithubURL
		}
		if params.Category != nil {
			p.Category = *params.Category
		}
		p.UpdatedAt = time.Now()
		return copyProject(p), nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeProjectRepo) DeleteProject(_ context.Context, id string) (*model.Project, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	for i, p := range r.projects {
		if p.ID == objectID {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			return copyProject(p), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}
