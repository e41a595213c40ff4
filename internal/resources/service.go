package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"benchmate/internal/apperr"
	"benchmate/internal/models"
	"benchmate/internal/storage"
)

const (
	presignTTL    = 15 * time.Minute
	trendingLimit = 10

	defaultListLimit   = 10
	defaultSearchLimit = 30
)

// Service covers uploading, browsing, searching, hyping, and commenting on
// resources. The object store is optional; without it resources carry
// externally hosted file URLs only.
type Service struct {
	db    *gorm.DB
	store storage.ObjectStore
}

// NewService wires the resources service.
func NewService(db *gorm.DB, store storage.ObjectStore) *Service {
	return &Service{db: db, store: store}
}

// UploaderInfo is the public slice of an uploader attached to listings.
type UploaderInfo struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Institute string    `json:"institute"`
}

// View is a resource with its uploader and hype count attached.
type View struct {
	models.Resource
	Uploader  UploaderInfo `json:"uploader"`
	HypeCount int64        `json:"hypeCount"`
}

// CommentAuthor is the public slice of a commenter.
type CommentAuthor struct {
	Name string `json:"name"`
}

// CommentView is a comment with its author's name attached.
type CommentView struct {
	models.Comment
	User CommentAuthor `json:"user"`
}

// DetailView is a single resource with its comment thread.
type DetailView struct {
	View
	Comments []CommentView `json:"comments"`
}

// UploadInput carries the fields of a new resource.
type UploadInput struct {
	Title        string
	Description  string
	FileURL      string
	University   string
	Department   string
	Semester     int
	CourseCode   string
	CourseName   string
	ResourceType string
}

// Upload creates a resource owned by userID. When an object store is
// configured the returned URL is a presigned PUT the client uses to push the
// file; otherwise the input must carry an external file URL.
func (s *Service) Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (*models.Resource, string, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, "", apperr.Validation("Title required")
	}
	if s.store == nil && strings.TrimSpace(in.FileURL) == "" {
		return nil, "", apperr.Validation("File URL required")
	}

	resource := models.Resource{
		ID:           uuid.New(),
		UploaderID:   userID,
		Title:        in.Title,
		Description:  in.Description,
		FileURL:      in.FileURL,
		University:   in.University,
		Department:   in.Department,
		Semester:     in.Semester,
		CourseCode:   in.CourseCode,
		CourseName:   in.CourseName,
		ResourceType: in.ResourceType,
	}

	var uploadURL string
	if s.store != nil && in.FileURL == "" {
		resource.FileKey = fmt.Sprintf("resources/%s", resource.ID)

		url, err := s.store.PresignPut(ctx, resource.FileKey, presignTTL)
		if err != nil {
			return nil, "", err
		}
		uploadURL = url
	}

	if err := s.db.WithContext(ctx).Create(&resource).Error; err != nil {
		return nil, "", err
	}

	return &resource, uploadURL, nil
}

// ListOptions filters and paginates the resource listing.
type ListOptions struct {
	University string
	Department string
	Search     string
	Page       int
	Limit      int
}

// List returns resources newest first, filtered and paginated.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]View, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = defaultListLimit
	}

	q := s.db.WithContext(ctx).Model(&models.Resource{}).Preload("Uploader")
	if opts.University != "" {
		q = q.Where("university = ?", opts.University)
	}
	if opts.Department != "" {
		q = q.Where("department = ?", opts.Department)
	}
	if opts.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(opts.Search)+"%")
	}

	var rows []models.Resource
	err := q.Order("created_at DESC").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return s.toViews(ctx, rows)
}

// Trending returns the top resources by hype count, then comment count,
// then views.
func (s *Service) Trending(ctx context.Context) ([]View, error) {
	var rows []models.Resource
	err := s.db.WithContext(ctx).Model(&models.Resource{}).
		Preload("Uploader").
		Order("(SELECT COUNT(*) FROM hypes WHERE hypes.resource_id = resources.id) DESC").
		Order("(SELECT COUNT(*) FROM comments WHERE comments.resource_id = resources.id) DESC").
		Order("views DESC").
		Limit(trendingLimit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return s.toViews(ctx, rows)
}

// MyUploads returns the caller's resources, newest first.
func (s *Service) MyUploads(ctx context.Context, userID uuid.UUID) ([]View, error) {
	var rows []models.Resource
	err := s.db.WithContext(ctx).
		Preload("Uploader").
		Where("uploader_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return s.toViews(ctx, rows)
}

// Get returns one resource with its comment thread and records the view.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*DetailView, error) {
	resource, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(resource).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return nil, err
	}

	views, err := s.toViews(ctx, []models.Resource{*resource})
	if err != nil {
		return nil, err
	}

	comments, err := s.Comments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &DetailView{View: views[0], Comments: comments}, nil
}

// UpdateInput carries optional resource mutations; nil fields stay untouched.
type UpdateInput struct {
	Title        *string
	Description  *string
	FileURL      *string
	University   *string
	Department   *string
	Semester     *int
	CourseCode   *string
	CourseName   *string
	ResourceType *string
}

// Update mutates a resource the caller owns.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, in UpdateInput) (*models.Resource, error) {
	resource, err := s.fetchOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	set := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	set("title", in.Title)
	set("description", in.Description)
	set("file_url", in.FileURL)
	set("university", in.University)
	set("department", in.Department)
	set("course_code", in.CourseCode)
	set("course_name", in.CourseName)
	set("resource_type", in.ResourceType)
	if in.Semester != nil {
		updates["semester"] = *in.Semester
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(resource).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return resource, nil
}

// Delete removes a resource the caller owns, its comments and hypes first.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	resource, err := s.fetchOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resource_id = ?", id).Delete(&models.Hype{}).Error; err != nil {
			return err
		}
		return tx.Delete(resource).Error
	})
}

// ToggleHype flips the caller's hype on a resource. It reports whether the
// resource is hyped after the call.
func (s *Service) ToggleHype(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	if _, err := s.fetch(ctx, id); err != nil {
		return false, err
	}

	db := s.db.WithContext(ctx)

	var existing models.Hype
	err := db.Where("user_id = ? AND resource_id = ?", userID, id).First(&existing).Error
	switch {
	case err == nil:
		return false, db.Delete(&existing).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		hype := models.Hype{UserID: userID, ResourceID: id}
		return true, db.Create(&hype).Error
	default:
		return false, err
	}
}

// AddComment attaches a comment to a resource.
func (s *Service) AddComment(ctx context.Context, userID, id uuid.UUID, content string) (*CommentView, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("Content required")
	}
	if _, err := s.fetch(ctx, id); err != nil {
		return nil, err
	}

	comment := models.Comment{UserID: userID, ResourceID: id, Content: content}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	return &CommentView{Comment: comment, User: CommentAuthor{Name: author.Name}}, nil
}

// Comments returns a resource's comments, newest first.
func (s *Service) Comments(ctx context.Context, id uuid.UUID) ([]CommentView, error) {
	var rows []models.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("resource_id = ?", id).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]CommentView, len(rows))
	for i, c := range rows {
		out[i] = CommentView{Comment: c, User: CommentAuthor{Name: c.User.Name}}
	}
	return out, nil
}

// DeleteComment removes a comment its author wrote.
func (s *Service) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	var comment models.Comment
	err := s.db.WithContext(ctx).First(&comment, "id = ?", commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Forbidden("Not allowed")
	}
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return apperr.Forbidden("Not allowed")
	}

	return s.db.WithContext(ctx).Delete(&comment).Error
}

// Download records a download and returns the URL the client fetches the
// file from: a presigned GET when the object lives in the bucket, else the
// stored external URL.
func (s *Service) Download(ctx context.Context, id uuid.UUID) (string, error) {
	resource, err := s.fetch(ctx, id)
	if err != nil {
		return "", err
	}

	err = s.db.WithContext(ctx).Model(resource).
		UpdateColumn("downloads", gorm.Expr("downloads + ?", 1)).Error
	if err != nil {
		return "", err
	}

	if resource.FileKey != "" && s.store != nil {
		return s.store.PresignGet(ctx, resource.FileKey, presignTTL)
	}
	return resource.FileURL, nil
}

// SearchOptions filters the full-text-ish search.
type SearchOptions struct {
	Query      string
	Type       string
	University string
	Department string
	Semester   int
	CourseCode string
	CourseName string
	Page       int
	Limit      int
}

// Pagination describes the result window of a search.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int64 `json:"totalPages"`
}

// Search matches the query across title, description, university,
// department, and course fields, case-insensitively, plus exact filters.
func (s *Service) Search(ctx context.Context, opts SearchOptions) ([]View, Pagination, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = defaultSearchLimit
	}

	build := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Resource{})
		if opts.Query != "" {
			like := "%" + strings.ToLower(opts.Query) + "%"
			q = q.Where(
				"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(university) LIKE ? OR LOWER(department) LIKE ? OR LOWER(course_code) LIKE ? OR LOWER(course_name) LIKE ?",
				like, like, like, like, like, like,
			)
		}
		if opts.Type != "" {
			q = q.Where("resource_type = ?", opts.Type)
		}
		if opts.University != "" {
			q = q.Where("university = ?", opts.University)
		}
		if opts.Department != "" {
			q = q.Where("department = ?", opts.Department)
		}
		if opts.Semester != 0 {
			q = q.Where("semester = ?", opts.Semester)
		}
		if opts.CourseCode != "" {
			q = q.Where("course_code = ?", opts.CourseCode)
		}
		if opts.CourseName != "" {
			q = q.Where("course_name = ?", opts.CourseName)
		}
		return q
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	var rows []models.Resource
	err := build().Preload("Uploader").
		Order("created_at DESC").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	views, err := s.toViews(ctx, rows)
	if err != nil {
		return nil, Pagination{}, err
	}

	pagination := Pagination{
		Total:      total,
		Page:       opts.Page,
		TotalPages: (total + int64(opts.Limit) - 1) / int64(opts.Limit),
	}
	return views, pagination, nil
}

func (s *Service) fetch(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	var resource models.Resource
	err := s.db.WithContext(ctx).Preload("Uploader").First(&resource, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Resource not found")
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// fetchOwned loads a resource and rejects callers other than the uploader.
// A missing resource renders the same "Not allowed" the source system used.
func (s *Service) fetchOwned(ctx context.Context, userID, id uuid.UUID) (*models.Resource, error) {
	var resource models.Resource
	err := s.db.WithContext(ctx).First(&resource, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Forbidden("Not allowed")
	}
	if err != nil {
		return nil, err
	}
	if resource.UploaderID != userID {
		return nil, apperr.Forbidden("Not allowed")
	}
	return &resource, nil
}

// toViews attaches uploader info and hype counts with one grouped query.
func (s *Service) toViews(ctx context.Context, rows []models.Resource) ([]View, error) {
	if len(rows) == 0 {
		return []View{}, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}

	type hypeCount struct {
		ResourceID uuid.UUID
		Count      int64
	}
	var counts []hypeCount
	err := s.db.WithContext(ctx).Model(&models.Hype{}).
		Select("resource_id, COUNT(*) AS count").
		Where("resource_id IN ?", ids).
		Group("resource_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		byID[c.ResourceID] = c.Count
	}

	out := make([]View, len(rows))
	for i, r := range rows {
		out[i] = View{
			Resource: r,
			Uploader: UploaderInfo{
				ID:        r.Uploader.ID,
				Name:      r.Uploader.Name,
				Institute: r.Uploader.Institute,
			},
			HypeCount: byID[r.ID],
		}
	}
	return out, nil
}
