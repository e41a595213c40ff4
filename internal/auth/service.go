package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"benchmate/internal/apperr"
	"benchmate/internal/mail"
	"benchmate/internal/models"
	"benchmate/internal/otp"
	"benchmate/internal/queue"
	"benchmate/internal/token"
)

const bcryptCost = 10

// Service orchestrates signup, login, and email verification. It owns no
// state beyond its injected collaborators; all persistence goes through the
// store and all email leaves through the queue.
type Service struct {
	db     *gorm.DB
	tokens *token.Manager
	otp    *otp.Generator
	queue  queue.Enqueuer
}

// NewService wires the auth orchestrator.
func NewService(db *gorm.DB, tokens *token.Manager, otpGen *otp.Generator, q queue.Enqueuer) *Service {
	return &Service{db: db, tokens: tokens, otp: otpGen, queue: q}
}

// SignUpInput carries the signup request fields.
type SignUpInput struct {
	Name      string
	Email     string
	Password  string
	Major     string
	Institute string
}

// SignUp registers a new unverified user, stores a fresh OTP for the email,
// and enqueues the verification message. The user row is not rolled back if
// the enqueue fails; a resend recovers that case.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	if len(in.Password) < 8 {
		return nil, apperr.Validation("Password length must be longer than 8 characters!")
	}

	db := s.db.WithContext(ctx)

	var existing models.User
	err := db.Where("email = ?", in.Email).First(&existing).Error
	switch {
	case err == nil:
		return nil, apperr.Conflict("user already registered")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Major:        in.Major,
		Institute:    in.Institute,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	code, expiresAt, err := s.otp.Generate()
	if err != nil {
		return nil, err
	}

	verification := models.EmailVerification{
		Email:     in.Email,
		OTP:       code,
		ExpiresAt: expiresAt,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"otp", "expires_at"}),
	}).Create(&verification).Error
	if err != nil {
		return nil, err
	}

	job := queue.NewEmailJob(user.Email, mail.SubjectVerification, mail.VerificationBody(code))
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return nil, err
	}

	return &user, nil
}

// Login checks credentials and issues a session token for a verified user.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, apperr.Validation("Incorrect password")
	}

	if !user.IsEmailVerified {
		return "", nil, apperr.Forbidden("Please verify your email first")
	}

	tok, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		return "", nil, err
	}

	return tok, &user, nil
}

// ResendEmailVerification regenerates the OTP for an email and re-enqueues
// the verification message. It updates the existing OTP row rather than
// upserting: if signup never stored one, the resend reports a clean
// missing-record error instead of creating it.
func (s *Service) ResendEmailVerification(ctx context.Context, email string) error {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("User not found")
	}
	if err != nil {
		return err
	}

	var verification models.EmailVerification
	err = db.Where("email = ?", email).First(&verification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("No pending verification for this email")
	}
	if err != nil {
		return err
	}

	code, expiresAt, err := s.otp.Generate()
	if err != nil {
		return err
	}

	err = db.Model(&verification).Updates(map[string]any{
		"otp":        code,
		"expires_at": expiresAt,
	}).Error
	if err != nil {
		return err
	}

	job := queue.NewEmailJob(user.Email, mail.SubjectVerification, mail.VerificationBody(code))
	return s.queue.Enqueue(ctx, job)
}

// VerifyOTP consumes a one-time code: on success the user is marked verified
// and the OTP row is deleted, so a repeat attempt fails on the missing record.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Validation("User not found")
	}
	if err != nil {
		return err
	}

	var verification models.EmailVerification
	err = db.Where("email = ?", email).First(&verification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Validation("No OTP record found")
	}
	if err != nil {
		return err
	}

	if verification.Expired() {
		return apperr.Validation("OTP expired")
	}
	if verification.OTP != code {
		return apperr.Validation("Invalid OTP")
	}

	if err := db.Model(&user).Update("is_email_verified", true).Error; err != nil {
		return err
	}

	return db.Delete(&verification).Error
}
