package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/almasoudi/tutorbridge-backend/internal/apierr"
	"github.com/almasoudi/tutorbridge-backend/internal/logger"
	"github.com/almasoudi/tutorbridge-backend/internal/repos"
	"github.com/almasoudi/tutorbridge-backend/internal/types"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photo_url"`
	Subject  string `json:"subject"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *types.User, error)
	Register(ctx context.Context, in RegisterInput) (*types.User, error)
	VerifyToken(tokenString string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*types.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

type authService struct {
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	return &authService{
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	if email == "" || password == "" {
		return "", nil, apierr.Validation("Email and password are required")
	}

	user, err := as.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apierr.Unauthorized("Invalid credentials")
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apierr.Unauthorized("Invalid credentials")
	}

	token, err := as.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	as.log.Info("User logged in", "user_id", user.ID.String())
	return token, user, nil
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*types.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, apierr.Validation("Name, email, and password are required")
	}

	exists, err := as.userRepo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.Conflict("User with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Bio:          in.Bio,
		PhotoURL:     in.PhotoURL,
		Subject:      in.Subject,
	}
	created, err := as.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	as.log.Info("User registered", "user_id", created.ID.String())
	return created, nil
}

func (as *authService) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apierr.Unauthorized("Invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, apierr.Unauthorized("Invalid token")
	}
	rawID, _ := claims["userId"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, apierr.Unauthorized("Invalid token")
	}
	return userID, nil
}

func (as *authService) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	user, err := as.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Unauthorized("Invalid token")
		}
		return nil, err
	}
	return user, nil
}

func (as *authService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := as.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.Unauthorized("User not found")
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apierr.Unauthorized("Current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return as.userRepo.UpdatePassword(ctx, userID, string(hash))
}

func (as *authService) generateToken(user *types.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID.String(),
		"email":  user.Email,
		"exp":    time.Now().Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
