package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"loanportal/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

// Service contains all business logic for authentication
type Service struct {
	users    UserRepositoryInterface
	profiles ProfileRepositoryInterface
	jwt      jwtService
	mailer   Mailer
}

type SessionResult struct {
	User  *UserResponse
	Token string
}

func NewService(users UserRepositoryInterface, profiles ProfileRepositoryInterface, jwt jwtService, mailer Mailer) *Service {
	return &Service{
		users:    users,
		profiles: profiles,
		jwt:      jwt,
		mailer:   mailer,
	}
}

// SignUp creates the auth identity and its role profile in two steps.
// The steps are not transactional: if the profile insert fails the user
// row stays behind and the email is burned until cleaned up manually.
// That identity is logged so an operator can find it.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*SessionResult, error) {
	role := domain.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	age := 0
	if req.Age != nil {
		age = *req.Age
	}
	profile := &domain.Profile{
		UserID:   user.ID,
		Email:    email,
		Username: strings.TrimSpace(req.Username),
		Phone:    strings.TrimSpace(req.Phone),
		Age:      age,
		Role:     role,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		log.Printf("signup orphan identity user_id=%d email=%s err=%v", user.ID, email, err)
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, string(role))
	if err != nil {
		return nil, err
	}

	return &SessionResult{User: toUserResponse(user, profile), Token: token}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*SessionResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Orphan identity from a half-finished sign-up.
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, string(profile.Role))
	if err != nil {
		return nil, err
	}

	return &SessionResult{User: toUserResponse(user, profile), Token: token}, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return toUserResponse(user, profile), nil
}

// UpdateProfile applies self-edits to the caller's profile. Role, email
// and shop fields are not touched here; shop details belong to the
// merchant module. Concurrent edits are last-write-wins.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*UserResponse, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if req.Username != "" {
		profile.Username = strings.TrimSpace(req.Username)
	}
	if req.Phone != "" {
		profile.Phone = strings.TrimSpace(req.Phone)
	}
	if req.Age != nil {
		profile.Age = *req.Age
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user, profile), nil
}

// RequestPasswordReset dispatches the reset email and nothing more.
// The response is identical whether or not the address is registered,
// so the endpoint cannot be used to probe for accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, req PasswordResetRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.mailer.SendPasswordReset(ctx, email, req.RedirectURL)
}

func toUserResponse(user *domain.User, profile *domain.Profile) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    profile.Username,
		Phone:       profile.Phone,
		Age:         profile.Age,
		Role:        string(profile.Role),
		ShopName:    profile.ShopName,
		ShopAddress: profile.ShopAddress,
		GSTIN:       profile.GSTIN,
		CreatedAt:   user.CreatedAt.Format("2006-01-02"),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// SQLite surfaces constraint failures as plain strings.
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
