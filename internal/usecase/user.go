package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/collabnest/collabnest-api/internal/model"
	"github.com/collabnest/collabnest-api/internal/repository"
)

// UserUsecase defines the business logic for user accounts and the follow graph.
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]*model.User, error)

	// GetUser returns the user with the given id, or (nil, nil) when no such
	// user exists.
	GetUser(ctx context.Context, id string) (*model.User, error)

	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByResetToken(ctx context.Context, token string) (*model.User, error)

	// ListUsernamesByName returns the usernames of all users whose name is an
	// exact match.
	ListUsernamesByName(ctx context.Context, name string) ([]string, error)

	// ListFollowers and ListFollowing return the resolved user sets for the
	// given user, or an empty slice when the user does not exist.
	ListFollowers(ctx context.Context, userID string) ([]*model.User, error)
	ListFollowing(ctx context.Context, userID string) ([]*model.User, error)

	CreateUser(ctx context.Context, params CreateUserParams) (*model.User, error)
	UpdateUser(ctx context.Context, id string, params repository.UpdateUserParams) (*model.User, error)

	// FollowUser adds followID to userID's following set and userID to
	// followID's followers set. It is idempotent and silently no-ops when
	// either id does not resolve, returning the (possibly unchanged) user
	// record for userID.
	FollowUser(ctx context.Context, userID, followID string) (*model.User, error)

	// UnfollowUser is the inverse of FollowUser with the same silent no-op
	// behavior for unresolved ids or a missing relationship.
	UnfollowUser(ctx context.Context, userID, unfollowID string) (*model.User, error)
}

// CreateUserParams defines the fields accepted at user creation. Anything
// outside this set (tokens, follow sets, project refs) is never settable here.
type CreateUserParams struct {
	Name     string `validate:"required"`
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password *string
	Image    *string
}

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type userUsecase struct {
	userRepo repository.UserRepository
	logger   *zerolog.Logger
}

// NewUserUsecase creates a new instance of UserUsecase.
func NewUserUsecase(userRepo repository.UserRepository, logger *zerolog.Logger) UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (u *userUsecase) ListUsers(ctx context.Context) ([]*model.User, error) {
	return u.userRepo.ListUsers(ctx)
}

func (u *userUsecase) GetUser(ctx context.Context, id string) (*model.User, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, nil
	}

	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

func (u *userUsecase) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

func (u *userUsecase) GetUserByResetToken(ctx context.Context, token string) (*model.User, error) {
	user, err := u.userRepo.GetUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

func (u *userUsecase) ListUsernamesByName(ctx context.Context, name string) ([]string, error) {
	users, err := u.userRepo.ListUsersByName(ctx, name)
	if err != nil {
		return nil, err
	}

	usernames := make([]string, 0, len(users))
	for _, user := range users {
		usernames = append(usernames, user.Username)
	}

	return usernames, nil
}

func (u *userUsecase) ListFollowers(ctx context.Context, userID string) ([]*model.User, error) {
	user, err := u.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []*model.User{}, nil
	}

	return u.userRepo.ListUsersByIDs(ctx, user.Followers)
}

func (u *userUsecase) ListFollowing(ctx context.Context, userID string) ([]*model.User, error) {
	user, err := u.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []*model.User{}, nil
	}

	return u.userRepo.ListUsersByIDs(ctx, user.Following)
}

func (u *userUsecase) CreateUser(ctx context.Context, params CreateUserParams) (*model.User, error) {
	if err := validate.Struct(params); err != nil {
		return nil, err
	}

	return u.userRepo.CreateUser(ctx, &model.User{
		Name:     params.Name,
		Username: params.Username,
		Email:    params.Email,
		Password: params.Password,
		Image:    params.Image,
	})
}

func (u *userUsecase) UpdateUser(
	ctx context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	user, err := u.userRepo.UpdateUser(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (u *userUsecase) FollowUser(ctx context.Context, userID, followID string) (*model.User, error) {
	user, err := u.GetUser(ctx, userID)
	if err != nil || user == nil {
		return nil, err
	}

	target, err := u.GetUser(ctx, followID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return user, nil
	}

	if user.IsFollowing(target.ID) {
		return user, nil
	}

	// Two sequential single-record writes; not atomic.
	if err := u.userRepo.AddFollowing(ctx, user.ID, target.ID); err != nil {
		return nil, err
	}
	if err := u.userRepo.AddFollower(ctx, target.ID, user.ID); err != nil {
		return nil, err
	}

	return u.GetUser(ctx, userID)
}

func (u *userUsecase) UnfollowUser(ctx context.Context, userID, unfollowID string) (*model.User, error) {
	user, err := u.GetUser(ctx, userID)
	if err != nil || user == nil {
		return nil, err
	}

	target, err := u.GetUser(ctx, unfollowID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return user, nil
	}

	if err := u.userRepo.RemoveFollowing(ctx, user.ID, target.ID); err != nil {
		return nil, err
	}
	if err := u.userRepo.RemoveFollower(ctx, target.ID, user.ID); err != nil {
		return nil, err
	}

	return u.GetUser(ctx, userID)
}
