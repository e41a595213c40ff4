package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"benchmate/internal/apperr"
	"benchmate/internal/mail"
	"benchmate/internal/models"
	"benchmate/internal/queue"
)

const bcryptCost = 10

// Service covers profile reads, profile updates, password changes, and
// account deletion.
type Service struct {
	db    *gorm.DB
	queue queue.Enqueuer
}

// NewService wires the users service.
func NewService(db *gorm.DB, q queue.Enqueuer) *Service {
	return &Service{db: db, queue: q}
}

// Me returns the full profile of the calling user.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Get returns another user's profile. The handler strips it down to public
// fields; the email never leaves the API for other users.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.Me(ctx, id)
}

// UpdateProfileInput carries optional profile mutations; nil fields are
// left untouched.
type UpdateProfileInput struct {
	Name      *string
	Institute *string
	Major     *string
}

// UpdateProfile applies the non-nil fields and returns the updated user.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*models.User, error) {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Institute != nil {
		updates["institute"] = *in.Institute
	}
	if in.Major != nil {
		updates["major"] = *in.Major
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return user, nil
}

// ChangePassword verifies the old password, stores a new hash, and queues
// an alert email. The alert follows the same fire-and-forget contract as
// verification mail.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperr.Validation("Old and new password required")
	}
	if len(newPassword) < 8 {
		return apperr.Validation("New password must be at least 8 characters")
	}

	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return apperr.Validation("Incorrect old password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Model(user).Update("password_hash", string(hash)).Error
	if err != nil {
		return err
	}

	job := queue.NewEmailJob(user.Email, mail.SubjectPasswordChanged, mail.PasswordChangedBody(user.Name))
	return s.queue.Enqueue(ctx, job)
}

// DeleteAccount removes the user and everything hanging off them, leaf
// entities first so no foreign key is violated mid-sequence: the user's own
// comments and hypes, then comments and hypes left by others on the user's
// resources, then the resources, then the user row.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	user, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownedResources := func() *gorm.DB {
			return tx.Session(&gorm.Session{NewDB: true}).
				Model(&models.Resource{}).
				Select("id").
				Where("uploader_id = ?", userID)
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Hype{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_id IN (?)", ownedResources()).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_id IN (?)", ownedResources()).Delete(&models.Hype{}).Error; err != nil {
			return err
		}
		if err := tx.Where("uploader_id = ?", userID).Delete(&models.Resource{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
