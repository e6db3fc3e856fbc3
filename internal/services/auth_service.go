package services

import (
	"fmt"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and verifies credentials against the local users table.
type AuthService struct {
	Users         repositories.UserRepository
	Secret        []byte
	TokenTTL      time.Duration
	PromoteSecret string
	RequestID     string
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the authenticated response payload: profile plus bearer token.
type Session struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (s AuthService) Register(in RegisterInput) (Session, error) {
	in.Email = utils.TrimOrEmpty(in.Email)
	in.FullName = utils.NormalizeSpace(in.FullName)
	in.Phone = utils.NormalizePhone(in.Phone)
	switch {
	case in.Email == "":
		return Session{}, domain.ValidationError{Field: "email", Msg: "required"}
	case in.Password == "":
		return Session{}, domain.ValidationError{Field: "password", Msg: "required"}
	case in.FullName == "":
		return Session{}, domain.ValidationError{Field: "full_name", Msg: "required"}
	case in.Phone == "":
		return Session{}, domain.ValidationError{Field: "phone", Msg: "required"}
	}

	if _, _, err := s.Users.GetByEmail(in.Email); err == nil {
		return Session{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	} else if !domain.IsNotFound(err) {
		return Session{}, wrapStorage(err, "failed to check user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	user, err := s.Users.Create(models.User{
		Email:    in.Email,
		FullName: in.FullName,
		Phone:    in.Phone,
		Role:     models.RoleStudent,
	}, string(hash))
	if err != nil {
		return Session{}, wrapStorage(err, "failed to create user")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return Session{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d", user.ID))
	return Session{User: user, Token: token}, nil
}

func (s AuthService) Login(in LoginInput) (Session, error) {
	if utils.TrimOrEmpty(in.Email) == "" || in.Password == "" {
		return Session{}, domain.ValidationError{Msg: "email and password are required"}
	}

	user, hash, err := s.Users.GetByEmail(in.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			return Session{}, domain.UnauthorizedError{Msg: "invalid credentials", Err: err}
		}
		return Session{}, wrapStorage(err, "failed to load user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)); err != nil {
		return Session{}, domain.UnauthorizedError{Msg: "invalid credentials", Err: err}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return Session{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", user.ID))
	return Session{User: user, Token: token}, nil
}

func (s AuthService) Me(userID int64) (models.User, error) {
	user, err := s.Users.GetByID(userID)
	if err != nil {
		return models.User{}, wrapStorage(err, "failed to load user")
	}
	return user, nil
}

// Promote upgrades a user to admin, guarded by the shared bootstrap secret
// rather than a bearer token so the first admin can be created at all.
func (s AuthService) Promote(secret string, userID int64) error {
	if s.PromoteSecret == "" || secret != s.PromoteSecret {
		return domain.UnauthorizedError{Msg: "invalid secret"}
	}
	if err := s.Users.SetRole(userID, models.RoleAdmin); err != nil {
		return wrapStorage(err, "failed to promote user")
	}
	utils.LogEvent(s.RequestID, "auth", "promote", fmt.Sprintf("user_id=%d", userID))
	return nil
}

func (s AuthService) generateToken(user models.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	return signed, nil
}
