/*
 * @author: gang678
 * @date: 2026.10.17
 * @description: 用户服务
 * @func:
 * 	1.创建用户(密码哈希、分配角色)
 * 	2.替换用户角色
 */
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/gang678/studentdocument/internal/model"
	"github.com/gang678/studentdocument/internal/model/system"
	"github.com/gang678/studentdocument/internal/pkg/auth"
	"github.com/gang678/studentdocument/internal/repo/mysql"
	"github.com/gang678/studentdocument/internal/service/crud"

	"gorm.io/gorm"
)

// UserService 用户服务
type UserService struct {
	*crud.Service[model.User, uint]
	userRepo        *mysql.UserRepository
	passwordManager *auth.PasswordManager
}

// NewUserService 创建用户服务
func NewUserService(userRepo *mysql.UserRepository, passwordManager *auth.PasswordManager) *UserService {
	return &UserService{
		Service:         crud.NewService[model.User, uint](userRepo, "user"),
		userRepo:        userRepo,
		passwordManager: passwordManager,
	}
}

// CreateUser 创建用户并分配角色
func (s *UserService) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, system.NewValidationError("", "请求体不能为空")
	}

	existing, err := s.userRepo.SelectByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: user select by username: %w", system.ErrDataAccess, err)
	}
	if existing != nil {
		return nil, system.ErrUsernameExists
	}

	hashed, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: req.Username,
		Password: hashed,
		Nickname: req.Nickname,
		Status:   model.UserStatusEnabled,
	}
	if err := s.userRepo.Insert(ctx, user); err != nil {
		if mysql.IsDuplicateKey(err) {
			return nil, system.ErrUsernameExists
		}
		return nil, fmt.Errorf("%w: user insert: %w", system.ErrDataAccess, err)
	}

	if len(req.RoleIDs) > 0 {
		return s.AssignRoles(ctx, user.ID, req.RoleIDs)
	}
	return user, nil
}

// AssignRoles 替换用户角色，返回带角色的用户
func (s *UserService) AssignRoles(ctx context.Context, userID uint, roleIDs []uint) (*model.User, error) {
	if err := s.userRepo.ReplaceRoles(ctx, userID, roleIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, system.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: assign user roles: %w", system.ErrDataAccess, err)
	}

	user, err := s.userRepo.SelectWithRolePermissions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user reload: %w", system.ErrDataAccess, err)
	}
	if user == nil {
		return nil, system.ErrUserNotFound
	}
	return user, nil
}
