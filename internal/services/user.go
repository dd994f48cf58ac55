package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/models"
	"github.com/dougladias/Clinica-vida-plena-sub000/internal/utils"
)

const (
	entityUser = "user"

	msgUserNotFound       = "Usuário não encontrado"
	msgUserEmailTaken     = "Já existe um usuário cadastrado com este email"
	msgInvalidCredentials = "Email ou senha inválidos"
)

type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UserUpdate holds the fields to change. Nil fields keep their value; a
// supplied password is hashed again.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

type UserFilter struct {
	Name  string
	Email string
	Role  string
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	user := models.User{
		Name:  strings.TrimSpace(in.Name),
		Email: normalizeEmail(in.Email),
		Role:  strings.TrimSpace(in.Role),
	}
	if err := requireFields(entityUser,
		"name", user.Name,
		"email", user.Email,
		"password", in.Password,
	); err != nil {
		return nil, err
	}
	if user.Role == "" {
		user.Role = models.DefaultUserRole
	}

	taken, err := exists(ctx, s.db, &models.User{}, "email = ?", user.Email)
	if err != nil {
		return nil, fmt.Errorf("check user email: %w", err)
	}
	if taken {
		return nil, conflictError(entityUser, "email", msgUserEmailTaken)
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = hashed

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflictError(entityUser, "email", msgUserEmailTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context, f UserFilter) ([]models.User, error) {
	q := s.db.WithContext(ctx).Model(&models.User{})
	q = whereContains(q, "name", f.Name)
	q = whereContains(q, "email", f.Email)
	if role := strings.TrimSpace(f.Role); role != "" {
		q = q.Where("role = ?", role)
	}

	users := []models.User{}
	if err := q.Order("name ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, in UserUpdate) (*models.User, error) {
	user, err := findByID[models.User](ctx, s.db, id, entityUser, msgUserNotFound)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != user.Email && email != "" {
			taken, err := exists(ctx, s.db, &models.User{}, "email = ? AND id <> ?", email, id)
			if err != nil {
				return nil, fmt.Errorf("check user email: %w", err)
			}
			if taken {
				return nil, conflictError(entityUser, "email", msgUserEmailTaken)
			}
		}
		in.Email = &email
	}

	if err := applyString(entityUser, "name", &user.Name, in.Name); err != nil {
		return nil, err
	}
	if err := applyString(entityUser, "email", &user.Email, in.Email); err != nil {
		return nil, err
	}
	if err := applyString(entityUser, "role", &user.Role, in.Role); err != nil {
		return nil, err
	}
	if in.Password != nil {
		if blank(*in.Password) {
			return nil, validationError(entityUser, "password", "O campo password não pode ser vazio")
		}
		hashed, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = hashed
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflictError(entityUser, "email", msgUserEmailTaken)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := findByID[models.User](ctx, s.db, id, entityUser, msgUserNotFound)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user owning email when password matches. Unknown
// emails and wrong passwords yield the same validation error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if err := requireFields(entityUser, "email", email, "password", password); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", normalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationError(entityUser, "email", msgInvalidCredentials)
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if !utils.CheckPassword(password, user.Password) {
		return nil, validationError(entityUser, "password", msgInvalidCredentials)
	}
	return &user, nil
}
