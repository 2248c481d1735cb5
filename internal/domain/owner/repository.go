package owner

import "context"

type Repository interface {
	Create(ctx context.Context, o *Owner) error
	Update(ctx context.Context, o *Owner) error
	FindByID(ctx context.Context, id uint) (*Owner, error)
	FindByLogin(ctx context.Context, login string) (*Owner, error)
	// ListActive returns the owners the reconciliation sweep visits.
	ListActive(ctx context.Context) ([]*Owner, error)
	List(ctx context.Context) ([]*Owner, error)
}
