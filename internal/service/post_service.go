// Package service contains the application's business logic between the HTTP
// layer and the repositories.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/notifications"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
	notifier *notifications.Notifier
}

// CreatePostInput is the draft payload for a new post. Slug may be empty, in
// which case it is derived from the title.
type CreatePostInput struct {
	Title    string
	Excerpt  string
	Content  string
	Category models.Category
	Slug     string
	ReadTime int
}

// UpdatePostInput carries a partial update; nil fields are left unchanged by
// the store.
type UpdatePostInput struct {
	Title    *string
	Excerpt  *string
	Content  *string
	Category *models.Category
	Slug     *string
	ReadTime *int
}

func NewPostService(postRepo repository.PostRepository, notifier *notifications.Notifier) *PostService {
	return &PostService{
		postRepo: postRepo,
		notifier: notifier,
	}
}

func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.postRepo.GetBySlug(ctx, slug)
}

// CategoryCounts returns the number of posts per storable category, with an
// entry for every category even when zero.
func (s *PostService) CategoryCounts(ctx context.Context) (map[models.Category]int64, error) {
	counts, err := s.postRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range models.Categories {
		if _, ok := counts[c]; !ok {
			counts[c] = 0
		}
	}
	return counts, nil
}

// CreatePost validates the draft before any store contact, then persists it.
// An absent read time normalizes to the default; an absent slug is derived
// from the title.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.ReadTime == 0 {
		in.ReadTime = models.DefaultReadTime
	}
	if in.Slug == "" {
		in.Slug = validation.Slugify(in.Title)
	}

	if err := validation.ValidateDraft(validation.Draft{
		Title:    in.Title,
		Excerpt:  in.Excerpt,
		Content:  in.Content,
		Category: in.Category,
		Slug:     in.Slug,
		ReadTime: in.ReadTime,
	}); err != nil {
		return nil, err
	}
	if in.Slug == "" {
		return nil, models.NewValidationError("Slug is required")
	}

	post := &models.Post{
		Title:    in.Title,
		Slug:     in.Slug,
		Excerpt:  in.Excerpt,
		Content:  in.Content,
		Category: in.Category,
		ReadTime: in.ReadTime,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.publish(ctx, notifications.EventPostCreated, post)
	return post, nil
}

// UpdatePost applies a partial update to an existing post. Provided fields
// are validated before any store contact.
func (s *PostService) UpdatePost(ctx context.Context, id string, in UpdatePostInput) (*models.Post, error) {
	fields := make(map[string]interface{})

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		fields["title"] = *in.Title
	}
	if in.Excerpt != nil {
		if *in.Excerpt == "" {
			return nil, models.NewValidationError("Excerpt is required")
		}
		fields["excerpt"] = *in.Excerpt
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("Content is required")
		}
		fields["content"] = *in.Content
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return nil, models.NewValidationError("Category must be one of: Web Design, Technology, History, Personal Life")
		}
		fields["category"] = *in.Category
	}
	if in.Slug != nil {
		if *in.Slug == "" {
			return nil, models.NewValidationError("Slug is required")
		}
		fields["slug"] = *in.Slug
	}
	if in.ReadTime != nil {
		if *in.ReadTime <= 0 {
			return nil, models.NewValidationError("Read time must be a positive number of minutes")
		}
		fields["read_time"] = *in.ReadTime
	}

	if len(fields) == 0 {
		return nil, models.NewValidationError("No fields to update")
	}

	post, err := s.postRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, notifications.EventPostUpdated, post)
	return post, nil
}

// DeletePost removes a post permanently. There is no undo once the store
// confirms the delete.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, notifications.EventPostDeleted, &models.Post{ID: id})
	return nil
}

// publish is fire-and-forget: delivery failures never fail the operation
// that triggered them.
func (s *PostService) publish(ctx context.Context, event string, post *models.Post) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.PublishPostEvent(ctx, notifications.PostEvent{
		Type:  event,
		ID:    post.ID,
		Slug:  post.Slug,
		Title: post.Title,
	})
}
