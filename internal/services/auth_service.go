package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/campus-hq/portal-service/internal/auth"
	"github.com/campus-hq/portal-service/internal/events"
	"github.com/campus-hq/portal-service/internal/mailer"
	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/repositories"
	"github.com/campus-hq/portal-service/internal/utils"
)

const (
	sessionTTL = 24 * time.Hour
	otpTTL     = 10 * time.Minute
)

type RegisterStudentRequest struct {
	MatricNumber string  `json:"matric_number" validate:"required,matric_number"`
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=6,max=72"`
	PhoneNumber  *string `json:"phone_number" validate:"omitempty,min=7,max=20"`
	FacultyID    *uint   `json:"faculty_id"`
	DepartmentID *uint   `json:"department_id"`
	LevelID      *uint   `json:"level_id"`
}

type LoginRequest struct {
	MatricNumber string `json:"matric_number" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

type SendOTPRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber *string `json:"phone_number"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,otp_code"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Student *models.Student `json:"student,omitempty"`
	Admin   *models.Admin   `json:"admin,omitempty"`
}

// AuthService owns registration, login/logout and OTP verification.
type AuthService interface {
	RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*models.Student, error)
	LoginStudent(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	LoginAdmin(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	// Logout verifies the session token; an invalid or absent token is
	// discarded silently and the student's login flag is left untouched.
	Logout(ctx context.Context, tokenString string) error
	SendOTP(ctx context.Context, req *SendOTPRequest) error
	VerifyOTP(ctx context.Context, req *VerifyOTPRequest) error
}

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
	mail      mailer.Mailer
	publisher events.EventPublisher

	jwtSecret string
	jwtIssuer string
}

func NewAuthService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *utils.Validator,
	mail mailer.Mailer,
	publisher events.EventPublisher,
	jwtSecret, jwtIssuer string,
) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		mail:      mail,
		publisher: publisher,
		jwtSecret: jwtSecret,
		jwtIssuer: jwtIssuer,
	}
}

func (s *authService) RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	taken, err := s.repo.Students().ExistsByMatric(ctx, req.MatricNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check matric uniqueness: %w", err)
	}
	if taken {
		return nil, ErrMatricTaken
	}

	taken, err = s.repo.Students().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student := &models.Student{
		MatricNumber: req.MatricNumber,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hash,
		Role:         models.RoleStudent,
		FacultyID:    req.FacultyID,
		DepartmentID: req.DepartmentID,
		LevelID:      req.LevelID,
	}

	if err := s.repo.Students().Create(ctx, student); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrMatricTaken
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info("student registered",
		"student_id", student.ID,
		"matric_number", student.MatricNumber)

	if err := s.publisher.PublishNotificationEvent(ctx, events.NewNotificationEvent(
		events.EventStudentRegistered,
		map[string]interface{}{"student_id": student.ID},
	)); err != nil {
		s.logger.Warn("failed to publish registration event", "error", err)
	}

	// Verification is best effort; the account exists either way.
	if err := s.SendOTP(ctx, &SendOTPRequest{Email: student.Email, PhoneNumber: student.PhoneNumber}); err != nil {
		s.logger.Warn("failed to send verification code",
			"student_id", student.ID, "error", err)
	}

	return student, nil
}

func (s *authService) LoginStudent(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	student, err := s.repo.Students().GetByMatric(ctx, req.MatricNumber)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}

	if err := auth.CheckPassword(student.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.repo.Students().RecordLogin(ctx, student.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	student.LoggedIn = true
	student.LastLoginAt = &now

	token, err := auth.NewSessionToken(s.jwtSecret, s.jwtIssuer, sessionTTL, auth.Claims{
		UserID:   student.ID,
		UserType: string(models.OwnerStudent),
		Matric:   student.MatricNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mint session token: %w", err)
	}

	s.logger.Info("student logged in", "student_id", student.ID)
	return &LoginResponse{Token: token, Student: student}, nil
}

func (s *authService) LoginAdmin(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	admin, err := s.repo.Admins().GetByMatric(ctx, req.MatricNumber)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := auth.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.NewSessionToken(s.jwtSecret, s.jwtIssuer, sessionTTL, auth.Claims{
		UserID:   admin.ID,
		UserType: string(models.OwnerAdmin),
		Matric:   admin.MatricNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to mint session token: %w", err)
	}

	s.logger.Info("admin logged in", "admin_id", admin.ID, "role", admin.Role)
	return &LoginResponse{Token: token, Admin: admin}, nil
}

func (s *authService) Logout(ctx context.Context, tokenString string) error {
	if tokenString == "" {
		return nil
	}

	claims, err := auth.ParseSessionToken(s.jwtSecret, tokenString)
	if err != nil {
		// Invalid or expired token: nothing to clear server-side.
		s.logger.Debug("logout with unverifiable token", "error", err)
		return nil
	}

	if claims.UserType != string(models.OwnerStudent) {
		return nil
	}

	if err := s.repo.Students().SetLoggedIn(ctx, claims.UserID, false); err != nil {
		if repositories.IsNotFoundError(err) {
			// Referenced student is gone; the cookie still gets cleared.
			return nil
		}
		return fmt.Errorf("failed to clear login flag: %w", err)
	}

	s.logger.Info("student logged out", "student_id", claims.UserID)
	return nil
}

func (s *authService) SendOTP(ctx context.Context, req *SendOTPRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	otp := &models.OTP{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Code:        code,
		Reference:   uuid.NewString(),
		ExpiresAt:   time.Now().UTC().Add(otpTTL),
	}
	if err := s.repo.OTPs().Create(ctx, otp); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.mail.Send(ctx, mailer.Message{
		ToAddress: req.Email,
		Subject:   "Your verification code",
		TextBody:  fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(otpTTL.Minutes())),
	}); err != nil {
		return fmt.Errorf("failed to deliver verification code: %w", err)
	}

	if err := s.publisher.PublishNotificationEvent(ctx, events.NewNotificationEvent(
		events.EventOTPSent,
		map[string]interface{}{"email": req.Email, "reference": otp.Reference},
	)); err != nil {
		s.logger.Warn("failed to publish otp event", "error", err)
	}

	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *VerifyOTPRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	otp, err := s.repo.OTPs().GetLatestByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrOTPNotFound
		}
		return fmt.Errorf("failed to look up verification code: %w", err)
	}

	if otp.Used {
		return ErrOTPUsed
	}
	if time.Now().UTC().After(otp.ExpiresAt) {
		return ErrOTPExpired
	}
	if otp.Code != req.Code {
		return ErrOTPMismatch
	}

	if err := s.repo.OTPs().MarkUsed(ctx, otp.ID); err != nil {
		return fmt.Errorf("failed to consume verification code: %w", err)
	}
	if err := s.repo.Students().SetEmailVerified(ctx, req.Email); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	s.logger.Info("email verified", "email", req.Email)
	return nil
}

// generateOTPCode returns a 6-digit numeric code from crypto/rand.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
