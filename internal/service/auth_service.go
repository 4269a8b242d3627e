package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Mteo06/gym-tracker-pro/internal/domain"
	"github.com/Mteo06/gym-tracker-pro/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("email already registered, try signing in")
	ErrAuthenticationFailed = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrProfileNotFound      = errors.New("profile not found")
)

const minPasswordLength = 6

// AuthService handles registration, login and profile management.
type AuthService interface {
	Register(ctx context.Context, fullName, email, password, passwordConfirm string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*domain.Profile, error)
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Sex       string
	HeightCm  *float64
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	jwtSecret string,
	jwtExpiration time.Duration,
) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 24
	}
	return &authService{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration and creates the initial profile row.
func (s *authService) Register(ctx context.Context, fullName, email, password, passwordConfirm string) (*domain.User, error) {
	if fullName == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password cannot be empty")
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if password != passwordConfirm {
		return nil, ErrPasswordMismatch
	}

	// Check if the email is already taken.
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique index catches the race between GetByEmail and Create.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID

	// Create the initial profile row. A failure here leaves an account
	// without a profile; that is logged and not surfaced to the caller,
	// the account itself is usable.
	firstName, lastName := splitFullName(fullName)
	profile := &domain.Profile{
		ID:        userID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		log.Printf("WARN: failed to create profile for user %s: %v", userID.Hex(), err)
	}

	user.PasswordHash = ""
	return user, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (token string, user *domain.User, err error) {
	if email == "" || password == "" {
		err = errors.New("email and password cannot be empty")
		return
	}

	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed // User not found maps to auth failure
			return
		}
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		err = ErrAuthenticationFailed
		user = nil
		return
	}

	token, err = s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// GetProfile retrieves the user's profile.
func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile overwrites the editable profile fields.
func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	profile.FirstName = update.FirstName
	profile.LastName = update.LastName
	if update.Email != "" {
		profile.Email = update.Email
	}
	profile.Sex = update.Sex
	profile.HeightCm = update.HeightCm

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "gym-tracker-pro",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// splitFullName splits "Mario Rossi" into first and last name; everything
// after the first space belongs to the last name.
func splitFullName(fullName string) (first, last string) {
	first, last, _ = strings.Cut(strings.TrimSpace(fullName), " ")
	return first, last
}
