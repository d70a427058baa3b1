package interfaces

import "context"

// RemoveAll removes every subscription of a user regardless of group.
const RemoveAll = "all"

type SubscribersRepository interface {
	// Add records a (user, group) subscription. Returns false without
	// writing when the pair is already present.
	Add(ctx context.Context, userId int64, group string) (added bool, err error)
	// Remove deletes the matching subscription rows, or every row of the
	// user when group is RemoveAll. Returns the number of rows deleted.
	Remove(ctx context.Context, userId int64, group string) (removed int, err error)
	ListByGroup(ctx context.Context, group string) ([]int64, error)
	// ListByGroups returns the union of subscribers of the given groups,
	// each user id at most once.
	ListByGroups(ctx context.Context, groups []string) ([]int64, error)
	CountByGroup(ctx context.Context, groups []string) (map[string]int, error)
}
