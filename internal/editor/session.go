// Package editor implements the admin editing workflow for blog posts:
// a small view-state machine (listing, creating, editing) that composes
// the post service's read and write operations with form input.
package editor

import (
	"context"
	"errors"
	"strings"
	"sync"

	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/validation"
)

// View identifies which screen of the editing workflow is active.
type View int

const (
	ViewList View = iota
	ViewCreate
	ViewEdit
)

func (v View) String() string {
	switch v {
	case ViewCreate:
		return "create"
	case ViewEdit:
		return "edit"
	default:
		return "list"
	}
}

// DefaultCategory is preselected for new drafts.
const DefaultCategory = models.CategoryTechnology

var (
	// ErrSubmitInFlight is returned when Submit is called while a
	// previous submit for the same session has not completed yet.
	ErrSubmitInFlight = errors.New("a submit is already in flight")

	// ErrNoDraft is returned when Submit is called from the list view.
	ErrNoDraft = errors.New("no draft is being edited")

	// ErrNoPendingDelete is returned when ConfirmDelete is called
	// without a preceding RequestDelete.
	ErrNoPendingDelete = errors.New("no delete is pending confirmation")
)

// Session holds the mutable state of one admin editing session. It is
// safe for concurrent use; blocking store calls are made outside the
// lock so reads stay responsive while an operation is in flight.
type Session struct {
	svc *service.PostService

	mu          sync.Mutex
	view        View
	posts       []*models.Post
	draft       validation.Draft
	editingID   string
	slugTouched bool
	pending     string
	submitting  bool
	loading     bool

	// loadGen tags each list request so late responses from an
	// earlier request never clobber the result of a later one.
	loadGen uint64
	// formGen changes on every view transition; a submit that
	// completes after the user has already left the form discards
	// its state transition.
	formGen uint64

	search   string
	category models.Category
}

// NewSession returns a session in the list view with no posts loaded.
func NewSession(svc *service.PostService) *Session {
	return &Session{
		svc:      svc,
		view:     ViewList,
		posts:    []*models.Post{},
		category: models.CategoryAll,
	}
}

// View returns the currently active view.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Loading reports whether the most recently initiated list request is
// still in flight. It tracks only the latest request, not a count of
// all outstanding ones.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Posts returns a snapshot of the loaded post list.
func (s *Session) Posts() []*models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Draft returns a copy of the draft currently being edited.
func (s *Session) Draft() validation.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Refresh reloads the post list. A response that arrives after a newer
// Refresh has been initiated is discarded. On failure the previously
// loaded list is left untouched and the error is returned.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loadGen++
	gen := s.loadGen
	s.loading = true
	s.mu.Unlock()

	posts, err := s.svc.ListPosts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.loadGen {
		// A newer request owns the list now.
		return nil
	}
	s.loading = false
	if err != nil {
		return err
	}
	s.posts = posts
	return nil
}

// StartCreate transitions to the create view with an empty draft.
func (s *Session) StartCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = ViewCreate
	s.formGen++
	s.editingID = ""
	s.slugTouched = false
	s.draft = validation.Draft{
		Category: DefaultCategory,
		ReadTime: models.DefaultReadTime,
	}
}

// StartEdit transitions to the edit view with a draft initialized from
// the given post. The slug counts as manually set from the start, so
// retitling an existing post never rewrites its slug.
func (s *Session) StartEdit(post *models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = ViewEdit
	s.formGen++
	s.editingID = post.ID
	s.slugTouched = true
	s.draft = validation.Draft{
		Title:    post.Title,
		Slug:     post.Slug,
		Excerpt:  post.Excerpt,
		Content:  post.Content,
		Category: post.Category,
		ReadTime: post.ReadTime,
	}
}

// Cancel discards the draft and returns to the list view without any
// store call.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toListLocked()
}

func (s *Session) toListLocked() {
	s.view = ViewList
	s.formGen++
	s.editingID = ""
	s.slugTouched = false
	s.draft = validation.Draft{}
}

// SetTitle updates the draft title. Until the slug has been edited by
// hand, the slug follows the title.
func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Title = title
	if !s.slugTouched {
		s.draft.Slug = validation.Slugify(title)
	}
}

// SetSlug sets the slug by hand and stops title-derived updates for the
// rest of the session.
func (s *Session) SetSlug(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Slug = slug
	s.slugTouched = true
}

func (s *Session) SetExcerpt(excerpt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Excerpt = excerpt
}

func (s *Session) SetContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Content = content
}

func (s *Session) SetCategory(category models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Category = category
}

// SetReadTime parses free-form read-time input; anything that is not a
// positive integer falls back to the default.
func (s *Session) SetReadTime(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.ReadTime = validation.NormalizeReadTime(raw)
}

// Submit persists the draft: a create in the create view, a full-record
// update in the edit view. On success the session returns to the list
// view and refreshes it; on failure the view and the entered draft are
// left intact for correction and resubmit. At most one submit may be
// in flight per session.
func (s *Session) Submit(ctx context.Context) (*models.Post, error) {
	s.mu.Lock()
	if s.view == ViewList {
		s.mu.Unlock()
		return nil, ErrNoDraft
	}
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.submitting = true
	gen := s.formGen
	view := s.view
	id := s.editingID
	draft := s.draft
	s.mu.Unlock()

	var post *models.Post
	var err error
	if view == ViewCreate {
		post, err = s.svc.CreatePost(ctx, service.CreatePostInput{
			Title:    draft.Title,
			Slug:     draft.Slug,
			Excerpt:  draft.Excerpt,
			Content:  draft.Content,
			Category: draft.Category,
			ReadTime: draft.ReadTime,
		})
	} else {
		post, err = s.svc.UpdatePost(ctx, id, service.UpdatePostInput{
			Title:    &draft.Title,
			Slug:     &draft.Slug,
			Excerpt:  &draft.Excerpt,
			Content:  &draft.Content,
			Category: &draft.Category,
			ReadTime: &draft.ReadTime,
		})
	}

	s.mu.Lock()
	s.submitting = false
	stale := gen != s.formGen
	if err == nil && !stale {
		s.toListLocked()
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if !stale {
		// Let the list pick up the persisted record. A refresh
		// failure keeps the previous list and is not a submit
		// failure.
		_ = s.Refresh(ctx)
	}
	return post, nil
}

// RequestDelete records the intent to delete a post. No store call is
// made until ConfirmDelete.
func (s *Session) RequestDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = id
}

// PendingDelete returns the id awaiting confirmation, if any.
func (s *Session) PendingDelete() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending, s.pending != ""
}

// CancelDelete discards a pending delete without a store call.
func (s *Session) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = ""
}

// ConfirmDelete issues the delete for the pending id. On success the
// list is refreshed; on failure it is left exactly as it was. Either
// way the pending intent is consumed.
func (s *Session) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	id := s.pending
	s.pending = ""
	s.mu.Unlock()
	if id == "" {
		return ErrNoPendingDelete
	}

	if err := s.svc.DeletePost(ctx, id); err != nil {
		return err
	}
	_ = s.Refresh(ctx)
	return nil
}

// SetSearch updates the search text applied by Visible.
func (s *Session) SetSearch(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = q
}

// SetCategoryFilter updates the category applied by Visible.
// CategoryAll disables category filtering.
func (s *Session) SetCategoryFilter(c models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = c
}

// Visible returns the loaded posts narrowed by the current search text
// and category filter. It never touches the store.
func (s *Session) Visible() []*models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Filter(s.posts, s.search, s.category)
}

// Filter returns the posts matching a search query and a category. A
// post matches when the query is empty or its title or excerpt contains
// the query case-insensitively, and the category is CategoryAll or
// equals the post's category.
func Filter(posts []*models.Post, q string, category models.Category) []*models.Post {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []*models.Post{}
	for _, p := range posts {
		if category != models.CategoryAll && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Excerpt), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}
