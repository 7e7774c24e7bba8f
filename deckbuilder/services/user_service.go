package services

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/hptcg/deckbuilder-api/deckbuilder/apperror"
	"github.com/hptcg/deckbuilder-api/deckbuilder/auth"
	"github.com/hptcg/deckbuilder-api/deckbuilder/cache"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/models"
	"github.com/hptcg/deckbuilder-api/deckbuilder/database/repositories"
)

// UserService handles registration and credential verification. Stored
// credentials keep the salt alongside the derived hash so verification only
// needs the stored record.
type UserService struct {
	repository  repositories.UserRepository
	cache       *cache.Cache
	tokenSecret string
	tokenTTL    time.Duration
}

func NewUserService(repository repositories.UserRepository, store *cache.Cache, tokenSecret string, tokenTTL time.Duration) *UserService {
	return &UserService{
		repository:  repository,
		cache:       store,
		tokenSecret: tokenSecret,
		tokenTTL:    tokenTTL,
	}
}

func (s *UserService) CreateUser(ctx context.Context, input *models.CreateUserInput) (string, error) {
	existing, err := s.repository.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apperror.UserAlreadyExists(input.Email)
	}

	salt, err := auth.GenerateSalt(auth.SaltSize)
	if err != nil {
		return "", err
	}

	user := &models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  encryptPassword(input.Password, salt),
		Salt:      base64.StdEncoding.EncodeToString(salt),
		CreatedAt: time.Now().UTC(),
		Decks:     input.Decks,
	}
	if user.Decks == nil {
		user.Decks = []string{}
	}

	userID, err := s.repository.Insert(ctx, user)
	if err != nil {
		return "", err
	}

	s.cache.Set(cache.KeyUserByEmail(user.Email), user, cache.DefaultTTL)
	s.cache.Invalidate(cache.KeyUsersList)
	return userID, nil
}

// LoginWithCredentials answers every failure mode with the same error so the
// response does not reveal whether the account exists.
func (s *UserService) LoginWithCredentials(ctx context.Context, input *models.CredentialsInput) (string, error) {
	user, err := s.getUserByEmail(ctx, input.Email)
	if err != nil {
		return "", err
	}
	if user == nil || !verifyPassword(user, input.Password) {
		return "", apperror.InvalidCredentials()
	}

	token, err := auth.GenerateAuthToken(user.Email, user.FullName(), s.tokenSecret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue auth token: %w", err)
	}
	return token, nil
}

func (s *UserService) SearchUsers(ctx context.Context) ([]models.User, error) {
	if users, ok := cache.Get[[]models.User](s.cache, cache.KeyUsersList); ok {
		return users, nil
	}

	users, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cache.KeyUsersList, users, cache.DefaultTTL)
	return users, nil
}

func (s *UserService) AddDeckToUser(ctx context.Context, userID, deckID string) (bool, error) {
	added, err := s.repository.AddDeck(ctx, userID, deckID)
	if err != nil {
		return false, err
	}
	if added {
		// The write changes the user's decks list, which is cached under
		// both id and email keys plus the list; the "user" prefix covers
		// all three.
		s.cache.Invalidate("user")
	}
	return added, nil
}

// GetUserByID returns the user or nil when unknown; absence is not an error
// here, callers decide what a missing user means.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	cacheKey := cache.KeyUserByID(userID)
	if user, ok := cache.Get[*models.User](s.cache, cacheKey); ok {
		return user, nil
	}

	user, err := s.repository.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		s.cache.Set(cacheKey, user, cache.DefaultTTL)
	}
	return user, nil
}

func (s *UserService) getUserByEmail(ctx context.Context, email string) (*models.User, error) {
	cacheKey := cache.KeyUserByEmail(email)
	if user, ok := cache.Get[*models.User](s.cache, cacheKey); ok {
		return user, nil
	}

	user, err := s.repository.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		s.cache.Set(cacheKey, user, cache.DefaultTTL)
	}
	return user, nil
}

// encryptPassword returns base64(salt || pbkdf2(password, salt)).
func encryptPassword(password string, salt []byte) string {
	hash := auth.GenerateHash(password, salt, auth.HashSize)
	return base64.StdEncoding.EncodeToString(append(append([]byte{}, salt...), hash...))
}

func verifyPassword(user *models.User, password string) bool {
	stored, err := base64.StdEncoding.DecodeString(user.Password)
	if err != nil || len(stored) != auth.SaltSize+auth.HashSize {
		return false
	}

	salt := stored[:auth.SaltSize]
	hash := auth.GenerateHash(password, salt, auth.HashSize)
	return subtle.ConstantTimeCompare(stored[auth.SaltSize:], hash) == 1
}
