package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightdeck/internal/auth"
	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/Domenick1991/flightdeck/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	Token string
	User  domain.User
}

type UserService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenManager) *UserService {
	return &UserService{users: users, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.authResult(user)
}

// Login deliberately collapses "no such user" and "wrong password" into
// ErrUnauthenticated so the response does not reveal which emails exist.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthenticated
	}

	return s.authResult(user)
}

func (s *UserService) authResult(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	public := *user
	public.PasswordHash = ""
	return &AuthResult{Token: token, User: public}, nil
}

var _ UserUseCase = (*UserService)(nil)
