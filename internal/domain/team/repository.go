package team

import "context"

// Repository describes the team archive used to keep rosters outside of files.
type Repository interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (*Team, bool, error)
	Save(ctx context.Context, item *Team) error
	Delete(ctx context.Context, name string) error
}
