package application

import (
	"errors"
	"strings"
	"time"

	"github.com/linskybing/projectsign/internal/api/middleware"
	"github.com/linskybing/projectsign/internal/domain/user"
	"github.com/linskybing/projectsign/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTTL = 24 * time.Hour

type UserService struct {
	Repos *repository.Repos
}

func NewUserService(repos *repository.Repos) *UserService {
	return &UserService{
		Repos: repos,
	}
}

func (s *UserService) RegisterUser(input user.CreateUserInput) (*user.User, error) {
	username := strings.TrimSpace(input.Username)
	_, err := s.Repos.User.GetUserByUsername(username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrPasswordHashFailure
	}

	usr := user.User{
		Username: username,
		Password: string(hashed),
		Email:    input.Email,
		FullName: input.FullName,
	}
	if err := s.Repos.User.SaveUser(&usr); err != nil {
		return nil, err
	}
	return &usr, nil
}

// LoginUser checks credentials and issues a session token.
func (s *UserService) LoginUser(username, password string) (user.User, string, error) {
	usr, err := s.Repos.User.GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(password)); err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(usr.UID, usr.Username, sessionTTL)
	if err != nil {
		return user.User{}, "", err
	}
	return usr, token, nil
}

func (s *UserService) FindUserByID(id uint) (user.User, error) {
	u, err := s.Repos.User.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
