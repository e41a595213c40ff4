package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"benchmate/internal/apperr"
	"benchmate/internal/models"
	"benchmate/internal/otp"
	"benchmate/internal/testutil"
	"benchmate/internal/token"
)

func newService(t *testing.T) (*Service, *gorm.DB, *testutil.QueueRecorder) {
	t.Helper()

	db := testutil.DB(t)
	rec := &testutil.QueueRecorder{}
	svc := NewService(db,
		token.NewManager([]byte("test-secret"), time.Hour),
		otp.NewGenerator(10*time.Minute),
		rec,
	)
	return svc, db, rec
}

func signUp(t *testing.T, svc *Service, email string) *models.User {
	t.Helper()

	user, err := svc.SignUp(context.Background(), SignUpInput{
		Name:     "Alice",
		Email:    email,
		Password: "longenough1",
	})
	require.NoError(t, err)
	return user
}

func storedOTP(t *testing.T, db *gorm.DB, email string) models.EmailVerification {
	t.Helper()

	var v models.EmailVerification
	require.NoError(t, db.Where("email = ?", email).First(&v).Error)
	return v
}

func TestSignUp_ShortPasswordBoundary(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpInput{Name: "A", Email: "a@x.com", Password: "seven77"})
	require.Error(t, err)
	appErr := apperr.From(err)
	require.Equal(t, http.StatusBadRequest, appErr.Status)
	require.Equal(t, "Password length must be longer than 8 characters!", appErr.Message)

	// Exactly 8 characters passes the boundary.
	_, err = svc.SignUp(ctx, SignUpInput{Name: "A", Email: "a@x.com", Password: "eight888"})
	require.NoError(t, err)
}

func TestSignUp_CreatesUnverifiedUserAndQueuesEmail(t *testing.T) {
	svc, db, rec := newService(t)

	user := signUp(t, svc, "a@x.com")
	require.False(t, user.IsEmailVerified)
	require.NotEmpty(t, user.PasswordHash)
	require.NotEqual(t, "longenough1", user.PasswordHash)

	v := storedOTP(t, db, "a@x.com")
	require.Len(t, v.OTP, 6)
	require.True(t, v.ExpiresAt.After(time.Now()))

	jobs := rec.Jobs()
	require.Len(t, jobs, 1)
	require.Equal(t, "sendVerificationEmail", jobs[0].Name)
	require.Equal(t, "a@x.com", jobs[0].Data.To)
	require.Contains(t, jobs[0].Data.HTML, v.OTP)
	require.Equal(t, 1, jobs[0].Opts.Attempts)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, db, _ := newService(t)

	signUp(t, svc, "a@x.com")

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Name: "B", Email: "a@x.com", Password: "longenough1",
	})
	require.Error(t, err)
	appErr := apperr.From(err)
	require.Equal(t, http.StatusBadRequest, appErr.Status)
	require.Equal(t, "user already registered", appErr.Message)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "a@x.com").Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestVerifyOTP(t *testing.T) {
	svc, db, _ := newService(t)
	ctx := context.Background()

	signUp(t, svc, "a@x.com")
	code := storedOTP(t, db, "a@x.com").OTP

	err := svc.VerifyOTP(ctx, "missing@x.com", code)
	require.Equal(t, "User not found", apperr.From(err).Message)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}
	err = svc.VerifyOTP(ctx, "a@x.com", wrong)
	require.Equal(t, "Invalid OTP", apperr.From(err).Message)
	require.Equal(t, http.StatusBadRequest, apperr.From(err).Status)

	require.NoError(t, svc.VerifyOTP(ctx, "a@x.com", code))

	var user models.User
	require.NoError(t, db.Where("email = ?", "a@x.com").First(&user).Error)
	require.True(t, user.IsEmailVerified)

	// One-time use: the record is gone, so a repeat fails on the missing record.
	err = svc.VerifyOTP(ctx, "a@x.com", code)
	require.Equal(t, "No OTP record found", apperr.From(err).Message)
}

func TestVerifyOTP_Expired(t *testing.T) {
	svc, db, _ := newService(t)
	ctx := context.Background()

	signUp(t, svc, "a@x.com")
	v := storedOTP(t, db, "a@x.com")

	require.NoError(t, db.Model(&models.EmailVerification{}).
		Where("email = ?", "a@x.com").
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	err := svc.VerifyOTP(ctx, "a@x.com", v.OTP)
	require.Equal(t, "OTP expired", apperr.From(err).Message)
	require.Equal(t, http.StatusBadRequest, apperr.From(err).Status)
}

func TestLogin(t *testing.T) {
	svc, db, _ := newService(t)
	ctx := context.Background()

	user := signUp(t, svc, "a@x.com")

	_, _, err := svc.Login(ctx, "missing@x.com", "longenough1")
	require.Equal(t, http.StatusNotFound, apperr.From(err).Status)

	_, _, err = svc.Login(ctx, "a@x.com", "wrongpassword")
	require.Equal(t, "Incorrect password", apperr.From(err).Message)

	// Correct credentials still fail while the email is unverified.
	_, _, err = svc.Login(ctx, "a@x.com", "longenough1")
	require.Equal(t, http.StatusForbidden, apperr.From(err).Status)

	code := storedOTP(t, db, "a@x.com").OTP
	require.NoError(t, svc.VerifyOTP(ctx, "a@x.com", code))

	tok, loggedIn, err := svc.Login(ctx, "a@x.com", "longenough1")
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)

	userID, err := token.NewManager([]byte("test-secret"), time.Hour).Verify(tok)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), userID)
}

func TestResend_OverwritesSingleRecord(t *testing.T) {
	svc, db, rec := newService(t)
	ctx := context.Background()

	signUp(t, svc, "a@x.com")

	require.NoError(t, svc.ResendEmailVerification(ctx, "a@x.com"))
	require.NoError(t, svc.ResendEmailVerification(ctx, "a@x.com"))

	var count int64
	require.NoError(t, db.Model(&models.EmailVerification{}).
		Where("email = ?", "a@x.com").Count(&count).Error)
	require.EqualValues(t, 1, count)

	second := storedOTP(t, db, "a@x.com")
	jobs := rec.Jobs()
	require.Len(t, jobs, 3) // signup + two resends
	require.Contains(t, jobs[2].Data.HTML, second.OTP)

	// The latest code is the one that verifies.
	require.NoError(t, svc.VerifyOTP(ctx, "a@x.com", second.OTP))
}

func TestResend_UnknownUserAndMissingRecord(t *testing.T) {
	svc, db, _ := newService(t)
	ctx := context.Background()

	err := svc.ResendEmailVerification(ctx, "missing@x.com")
	require.Equal(t, http.StatusNotFound, apperr.From(err).Status)

	// A user without a pending OTP row gets a clean domain error: resend
	// updates the existing record, it never creates one.
	signUp(t, svc, "a@x.com")
	require.NoError(t, db.Where("email = ?", "a@x.com").Delete(&models.EmailVerification{}).Error)

	err = svc.ResendEmailVerification(ctx, "a@x.com")
	require.Equal(t, http.StatusNotFound, apperr.From(err).Status)
	require.Equal(t, "No pending verification for this email", apperr.From(err).Message)
}

func TestSignUp_EnqueueFailureKeepsUserRow(t *testing.T) {
	svc, db, rec := newService(t)
	rec.Err = context.DeadlineExceeded

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Name: "A", Email: "a@x.com", Password: "longenough1",
	})
	require.Error(t, err)

	// No transaction spans the user write and the enqueue: the row stays.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "a@x.com").Count(&count).Error)
	require.EqualValues(t, 1, count)
}
