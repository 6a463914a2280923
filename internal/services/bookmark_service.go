package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/justsurfingit/dream-finder/internal/dtos"
	"github.com/justsurfingit/dream-finder/internal/models"
	"github.com/justsurfingit/dream-finder/internal/query"
	"github.com/justsurfingit/dream-finder/internal/store"
)

// DefaultBookmarksPageSize is the bookmark listing stride and limit.
const DefaultBookmarksPageSize = 7

type BookmarkService struct {
	bookmarks store.BookmarkStore
	pageSize  int
}

func NewBookmarkService(bookmarks store.BookmarkStore, pageSize int) *BookmarkService {
	if pageSize < 1 {
		pageSize = DefaultBookmarksPageSize
	}
	return &BookmarkService{bookmarks: bookmarks, pageSize: pageSize}
}

// Page returns one page of user's bookmarks and how many they have in total.
func (s *BookmarkService) Page(ctx context.Context, user, rawPage string) (*dtos.BookmarkPage, error) {
	user = normalizeEmail(user)
	window := query.PageWindow(query.ParsePage(rawPage), s.pageSize)

	var (
		count int64
		page  []models.Bookmark
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.bookmarks.CountBookmarks(gctx, user)
		count = n
		return err
	})
	g.Go(func() error {
		b, err := s.bookmarks.ListBookmarks(gctx, user, window)
		page = b
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return &dtos.BookmarkPage{Bookmarks: orEmpty(page), Count: count}, nil
}

// Add saves a bookmark. Saving the same job twice is a no-op that returns a
// nil id.
func (s *BookmarkService) Add(ctx context.Context, req *dtos.BookmarkRequest) (*string, error) {
	b := &models.Bookmark{
		User:        normalizeEmail(req.User),
		JobID:       strings.TrimSpace(req.JobID),
		JobTitle:    strings.TrimSpace(req.JobTitle),
		CompanyName: strings.TrimSpace(req.CompanyName),
	}
	if err := s.bookmarks.InsertBookmark(ctx, b); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, nil
		}
		return nil, fmt.Errorf("add bookmark: %w", err)
	}
	return &b.ID, nil
}

func (s *BookmarkService) Delete(ctx context.Context, id string) error {
	if err := s.bookmarks.DeleteBookmark(ctx, id); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}
