package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	Create(ctx context.Context, f Fields) (Book, error)
	Update(ctx context.Context, id int64, f Fields) (Book, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f Filter) ([]Book, error)
}
