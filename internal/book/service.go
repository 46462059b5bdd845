package book

import (
	"context"
	"fmt"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new book and returns it with its assigned id.
func (s *Service) Create(ctx context.Context, f Fields) (Book, error) {
	b, err := s.repo.Create(ctx, f)
	if err != nil {
		return Book{}, fmt.Errorf("creating book: %w", err)
	}
	return b, nil
}

// Update replaces every field of the book with the given id.
func (s *Service) Update(ctx context.Context, id int64, f Fields) (Book, error) {
	b, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return Book{}, fmt.Errorf("updating book %d: %w", id, err)
	}
	return b, nil
}

// Delete removes the book with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting book %d: %w", id, err)
	}
	return nil
}

// Search returns the books matching every non-empty filter.
func (s *Service) Search(ctx context.Context, f Filter) ([]Book, error) {
	books, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("searching books: %w", err)
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}
