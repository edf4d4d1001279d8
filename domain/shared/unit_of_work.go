package shared

import "context"

// UnitOfWork runs fn as one atomic change: repositories called with the
// context fn receives join the unit, and an error from fn discards every
// change made through them.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
