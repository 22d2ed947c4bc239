// Package businessflow contains the core business logic and use cases for user registration
package businessflow

import (
	"context"

	"github.com/openmusic/api/app/dto"
	"github.com/openmusic/api/models"
	"github.com/openmusic/api/repository"
	"github.com/openmusic/api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserFlow defines operations for user registration and lookup
type UserFlow interface {
	CreateUser(ctx context.Context, req *dto.UserRequest, metadata *ClientMetadata) (*dto.UserIDData, error)
	GetUser(ctx context.Context, userID string, metadata *ClientMetadata) (*models.User, error)
}

// UserFlowImpl implements UserFlow
type UserFlowImpl struct {
	userRepo   repository.UserRepository
	bcryptCost int
	db         *gorm.DB
}

// NewUserFlow constructs a UserFlow
func NewUserFlow(userRepo repository.UserRepository, bcryptCost int, db *gorm.DB) UserFlow {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserFlowImpl{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		db:         db,
	}
}

// CreateUser registers a new user with a unique username. The hash is
// computed before the insert; the unique index catches concurrent takers.
func (u *UserFlowImpl) CreateUser(ctx context.Context, req *dto.UserRequest, metadata *ClientMetadata) (*dto.UserIDData, error) {
	existing, err := u.userRepo.ByUsername(ctx, req.Username)
	if err != nil {
		return nil, NewBusinessError("CREATE_USER_FAILED", "Failed to check username", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), u.bcryptCost)
	if err != nil {
		return nil, NewBusinessError("CREATE_USER_FAILED", "Failed to hash password", ErrPasswordHashingFailed)
	}

	user := &models.User{
		ID:           utils.NewID("user"),
		Username:     req.Username,
		PasswordHash: string(hash),
		Fullname:     req.Fullname,
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}

	if err := u.userRepo.Save(ctx, user); err != nil {
		if repository.IsDuplicateKeyError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, NewBusinessError("CREATE_USER_FAILED", "Failed to create user", err)
	}

	return &dto.UserIDData{UserID: user.ID}, nil
}

// GetUser fetches a user by ID
func (u *UserFlowImpl) GetUser(ctx context.Context, userID string, metadata *ClientMetadata) (*models.User, error) {
	return getUser(ctx, u.userRepo, userID)
}
