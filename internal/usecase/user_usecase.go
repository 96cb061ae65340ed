package usecase

import (
	"context"
	"errors"
	"time"

	"radlab-backoffice/internal/converter"
	"radlab-backoffice/internal/delivery/dto"
	"radlab-backoffice/internal/domain/entity"
	"radlab-backoffice/internal/domain/repository"
	"radlab-backoffice/internal/service"
	"radlab-backoffice/pkg/pagination"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrCannotDeleteSelf    = errors.New("you cannot delete your own account")
	ErrSuperAdminOnly      = errors.New("only super admins may perform this action")
	ErrUnknownModule       = errors.New("unknown privilege module")
	ErrUnknownOperation    = errors.New("unknown privilege operation")
	ErrPrivilegeNotGranted = errors.New("privilege is not granted")
)

type UserUsecase interface {
	Create(ctx context.Context, actor *entity.User, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetAll(ctx context.Context, params *pagination.Params) ([]dto.UserResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error
	GrantPrivilege(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.GrantPrivilegeRequest) (*dto.UserResponse, error)
	RevokePrivilege(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.RevokePrivilegeRequest) (*dto.UserResponse, error)
}

type userUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
	audit    service.AuditService
}

func NewUserUsecase(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository, audit service.AuditService) UserUsecase {
	return &userUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
		audit:    audit,
	}
}

func (u *userUsecase) Create(ctx context.Context, actor *entity.User, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if req.UserType == entity.UserTypeRadiologist && req.LicenseID == "" {
		return nil, ErrLicenseIDRequired
	}
	if req.UserType == entity.UserTypeSuperAdmin && !actor.IsSuperAdmin {
		return nil, ErrSuperAdminOnly
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: req.Username,
	})
	if err != nil {
		u.log.Warnf("Failed to generate TOTP secret: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username:        req.Username,
		Name:            req.Name,
		Email:           req.Email,
		Password:        string(hashedPassword),
		UserType:        req.UserType,
		IsSuperAdmin:    req.UserType == entity.UserTypeSuperAdmin,
		TwoFactorSecret: key.Secret(),
	}
	if req.LicenseID != "" {
		user.LicenseID = &req.LicenseID
	}

	if err := u.userRepo.Create(u.db.WithContext(ctx), user); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameAlreadyExists
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "license") {
			return nil, ErrLicenseIDAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	u.audit.LogCreate(ctx, &actor.ID, entity.EntityKindUser, user.ID.String(), converter.UserToResponse(user))

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) GetAll(ctx context.Context, params *pagination.Params) ([]dto.UserResponse, int64, error) {
	users, total, err := u.userRepo.FindAll(u.db.WithContext(ctx), params)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, 0, err
	}
	return converter.UsersToResponses(users), total, nil
}

func (u *userUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	before := converter.UserToResponse(user)

	if req.IsSuperAdmin != nil && !actor.IsSuperAdmin {
		return nil, ErrSuperAdminOnly
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = string(hashedPassword)
	}
	if req.UserType != nil {
		if *req.UserType == entity.UserTypeSuperAdmin && !actor.IsSuperAdmin {
			return nil, ErrSuperAdminOnly
		}
		user.UserType = *req.UserType
	}
	if req.LicenseID != nil {
		user.LicenseID = req.LicenseID
	}
	if req.IsActive != nil {
		user.IsActive = req.IsActive
	}
	if req.IsSuperAdmin != nil {
		user.IsSuperAdmin = *req.IsSuperAdmin
	}

	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "license") {
			return nil, ErrLicenseIDAlreadyExists
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	after := converter.UserToResponse(user)
	u.audit.LogUpdate(ctx, &actor.ID, entity.EntityKindUser, user.ID.String(), before, after)

	return after, nil
}

// Delete hard-deletes a user. Super-admin only, and never the actor's own
// account.
func (u *userUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	if !actor.IsSuperAdmin {
		return ErrSuperAdminOnly
	}
	if actor.ID == id {
		return ErrCannotDeleteSelf
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := u.userRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}

	u.audit.LogDelete(ctx, &actor.ID, entity.EntityKindUser, id.String(), converter.UserToResponse(user))
	return nil
}

func (u *userUsecase) GrantPrivilege(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.GrantPrivilegeRequest) (*dto.UserResponse, error) {
	if !actor.IsSuperAdmin {
		return nil, ErrSuperAdminOnly
	}
	if !entity.IsValidModule(req.Module) {
		return nil, ErrUnknownModule
	}
	for _, op := range req.Operations {
		if !entity.IsValidOperation(op) {
			return nil, ErrUnknownOperation
		}
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	before := converter.UserToResponse(user)

	user.Privileges = user.Privileges.Grant(req.Module, req.Operations, &actor.ID, time.Now())
	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to grant privilege: %+v", err)
		return nil, err
	}

	after := converter.UserToResponse(user)
	u.audit.LogUpdate(ctx, &actor.ID, entity.EntityKindUser, user.ID.String(), before, after)

	return after, nil
}

func (u *userUsecase) RevokePrivilege(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.RevokePrivilegeRequest) (*dto.UserResponse, error) {
	if !actor.IsSuperAdmin {
		return nil, ErrSuperAdminOnly
	}
	if !entity.IsValidModule(req.Module) {
		return nil, ErrUnknownModule
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Privileges.Find(req.Module) == nil {
		return nil, ErrPrivilegeNotGranted
	}

	before := converter.UserToResponse(user)

	user.Privileges = user.Privileges.Revoke(req.Module, req.Operations)
	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to revoke privilege: %+v", err)
		return nil, err
	}

	after := converter.UserToResponse(user)
	u.audit.LogUpdate(ctx, &actor.ID, entity.EntityKindUser, user.ID.String(), before, after)

	return after, nil
}
