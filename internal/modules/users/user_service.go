package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"charge-finder/internal/models"
	emailSvc "charge-finder/pkg/email"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 7 * 24 * time.Hour

// minPhoneDigits is the number of digits a phone number must contain after
// stripping everything that is not a digit.
const minPhoneDigits = 10

// ErrPhoneTooShort is surfaced as a 400 by the handler.
var ErrPhoneTooShort = fmt.Errorf("%w: phone must contain at least %d digits", models.ErrValidation, minPhoneDigits)

// ServiceInterface defines methods for user business logic.
type ServiceInterface interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)

	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, data models.UpdateProfileRequest) (*models.User, error)

	GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error)
	UpdatePreferences(ctx context.Context, userID string, data models.UpdatePreferencesRequest) (*models.UserPreferences, error)
}

type Service struct {
	userRepo        RepositoryInterface
	emailer         emailSvc.ServiceInterface
	templateManager *emailSvc.TemplateManager
	jwtSecret       string
	logger          *zap.Logger
}

func NewService(
	userRepo RepositoryInterface,
	emailer emailSvc.ServiceInterface,
	tm *emailSvc.TemplateManager,
	jwtSecret string,
	logger *zap.Logger,
) ServiceInterface {
	return &Service{
		userRepo:        userRepo,
		emailer:         emailer,
		templateManager: tm,
		jwtSecret:       jwtSecret,
		logger:          logger,
	}
}

// validatePhone enforces the registration phone rule: after trimming and
// dropping the leading plus, at least minPhoneDigits digits must remain.
func validatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("%w: phone is required", models.ErrValidation)
	}
	phone = strings.TrimPrefix(phone, "+")

	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < minPhoneDigits {
		return ErrPhoneTooShort
	}
	return nil
}

func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := validatePhone(req.Phone); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("service.Register.HashPassword: %w", err)
	}

	newUser := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: strings.TrimSpace(req.Phone),
	}
	createdUser, err := s.userRepo.Create(ctx, newUser, string(hashedPassword))
	if err != nil {
		if errors.Is(err, models.ErrConflict) || errors.Is(err, models.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("service.Register.CreateUser: %w", err)
	}

	s.sendWelcomeEmail(createdUser)

	return s.generateAuthResponse(createdUser)
}

// sendWelcomeEmail delivers the welcome mail in the background; a failure
// never fails registration.
func (s *Service) sendWelcomeEmail(user *models.User) {
	if s.emailer == nil || s.templateManager == nil {
		return
	}

	htmlContent, err := s.templateManager.GenerateWelcomeEmailHTML(emailSvc.WelcomeData{Name: user.Name})
	if err != nil {
		s.logger.Warn("failed to generate welcome email", zap.Error(err))
		return
	}

	subject := "Welcome! Your charging account is ready"
	plainText := fmt.Sprintf("Hi %s, your account is ready. Find and book a charger whenever you need one.", user.Name)

	go func() {
		if err := s.emailer.SendEmail(context.Background(), user.Email, subject, plainText, htmlContent); err != nil {
			s.logger.Warn("failed to send welcome email", zap.String("email", user.Email), zap.Error(err))
		}
	}()
}

func (s *Service) generateAuthResponse(user *models.User) (*models.AuthResponse, error) {
	claims := &models.JwtCustomClaims{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenSignedString, err := accessToken.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	user.PasswordHash = "" // Do NOT send sensitive info back

	return &models.AuthResponse{
		AccessToken: tokenSignedString,
		User:        user,
	}, nil
}

func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("service.Login.FindByEmail: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return s.generateAuthResponse(user)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, data models.UpdateProfileRequest) (*models.User, error) {
	if data.Phone != nil {
		if err := validatePhone(*data.Phone); err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(*data.Phone)
		data.Phone = &trimmed
	}
	return s.userRepo.UpdateProfile(ctx, userID, data)
}

// GetPreferences returns the stored row, or zero-value defaults when the
// user never saved any.
func (s *Service) GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	prefs, err := s.userRepo.GetPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return &models.UserPreferences{UserID: userID}, nil
		}
		return nil, fmt.Errorf("service.GetPreferences: %w", err)
	}
	return prefs, nil
}

func (s *Service) UpdatePreferences(ctx context.Context, userID string, data models.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	return s.userRepo.UpsertPreferences(ctx, userID, data)
}
