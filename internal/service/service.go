package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/truledger/loanboard/internal/config"
	"github.com/truledger/loanboard/internal/models"
	"github.com/truledger/loanboard/internal/repository"
)

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, log: log, config: cfg}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// ownerScope resolves the authenticated user's data scope: team members see
// their inviting owner's records, everyone else their own.
func (s *Service) ownerScope(ctx context.Context) (string, error) {
	userID, ok := ctx.Value("userID").(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return s.repo.OwnerScope(userID)
}

// TeamMembers lists the scope owner's invited members
func (s *Service) TeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.TeamMembers(ownerID)
}

// InviteTeamMember adds an email to the scope owner's team
func (s *Service) InviteTeamMember(ctx context.Context, email string) (*models.TeamMember, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	member := &models.TeamMember{OwnerID: ownerID, Email: email}
	if err := s.repo.AddTeamMember(member); err != nil {
		return nil, err
	}
	s.log.Infof("Team member invited by %s: %s", ownerID, email)
	return member, nil
}

// RemoveTeamMember removes an invitation by email
func (s *Service) RemoveTeamMember(ctx context.Context, email string) error {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.RemoveTeamMember(ownerID, email); err != nil {
		return err
	}
	s.log.Infof("Team member removed by %s: %s", ownerID, email)
	return nil
}
