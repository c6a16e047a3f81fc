package services

import (
	"errors"

	"github.com/terraincognita07/shiftdesk/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAuthUserInactive     = errors.New("auth user inactive")
	ErrAuthPasswordRequired = errors.New("auth password change required")
)

type AuthUserRepository interface {
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID string) (models.User, error)
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// Authenticate checks credentials. Every rejection, inactive accounts included,
// is reported as ErrAuthCredentialsInvalid.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	credentials, err := ParseCredentials(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(credentials.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAuthCredentialsInvalid
		}
		return models.User{}, err
	}
	if !user.Active {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if user.MustChangePassword {
		return user, ErrAuthPasswordRequired
	}
	return user, nil
}

func (service *AuthService) FindActiveByID(userID string) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}
	if !user.Active {
		return models.User{}, ErrAuthUserInactive
	}
	return user, nil
}
