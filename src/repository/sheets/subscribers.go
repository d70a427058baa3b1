package sheets

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	sheetsapi "github.com/ivkamenev/school_schedule_bot/src/google_docs/sheets_api"
	"github.com/ivkamenev/school_schedule_bot/src/repository/interfaces"
)

var _ interfaces.SubscribersRepository = (*SubscribersRepository)(nil)

var subsHeader = []string{"user_id", "group", "added_at"}

// SubscribersRepository keeps subscriptions as rows of the subs sheet.
// The header is verified before every operation and repaired when an
// operator has edited it away.
type SubscribersRepository struct {
	store sheetsapi.RowStore
	table string
	loc   *time.Location
}

func NewSubscribersRepository(store sheetsapi.RowStore, table string, loc *time.Location) *SubscribersRepository {
	return &SubscribersRepository{store: store, table: table, loc: loc}
}

func (repo *SubscribersRepository) Add(ctx context.Context, userId int64, group string) (bool, error) {
	if err := repo.store.EnsureHeaders(ctx, repo.table, subsHeader); err != nil {
		return false, err
	}
	rows, err := repo.store.ReadAll(ctx, repo.table)
	if err != nil {
		return false, fmt.Errorf("failed to read subscriptions: %w", err)
	}
	for _, row := range rows {
		if row["user_id"] == strconv.FormatInt(userId, 10) && row["group"] == group {
			return false, nil
		}
	}
	addedAt := time.Now().In(repo.loc).Format(time.RFC3339)
	err = repo.store.AppendRows(ctx, repo.table, [][]any{
		{strconv.FormatInt(userId, 10), group, addedAt},
	})
	if err != nil {
		return false, fmt.Errorf("failed to append subscription: %w", err)
	}
	return true, nil
}

func (repo *SubscribersRepository) Remove(ctx context.Context, userId int64, group string) (int, error) {
	if err := repo.store.EnsureHeaders(ctx, repo.table, subsHeader); err != nil {
		return 0, err
	}
	values, err := repo.store.ReadAllValues(ctx, repo.table)
	if err != nil {
		return 0, fmt.Errorf("failed to read subscription rows: %w", err)
	}

	wantId := strconv.FormatInt(userId, 10)
	toDelete := []int{}
	// Sheet rows are 1-based and the first one is the header.
	for i, row := range values {
		if i == 0 || len(row) == 0 {
			continue
		}
		rowGroup := ""
		if len(row) > 1 {
			rowGroup = row[1]
		}
		if row[0] == wantId && (group == interfaces.RemoveAll || rowGroup == group) {
			toDelete = append(toDelete, i+1)
		}
	}
	if len(toDelete) == 0 {
		return 0, nil
	}
	if err := repo.store.DeleteRowsByIndex(ctx, repo.table, toDelete); err != nil {
		return 0, fmt.Errorf("failed to delete subscription rows: %w", err)
	}
	return len(toDelete), nil
}

func (repo *SubscribersRepository) ListByGroup(ctx context.Context, group string) ([]int64, error) {
	return repo.ListByGroups(ctx, []string{group})
}

func (repo *SubscribersRepository) ListByGroups(ctx context.Context, groups []string) ([]int64, error) {
	if err := repo.store.EnsureHeaders(ctx, repo.table, subsHeader); err != nil {
		return nil, err
	}
	rows, err := repo.store.ReadAll(ctx, repo.table)
	if err != nil {
		return nil, fmt.Errorf("failed to read subscriptions: %w", err)
	}

	seen := map[int64]struct{}{}
	targets := []int64{}
	for _, row := range rows {
		if !containsGroup(groups, row["group"]) {
			continue
		}
		userId, err := strconv.ParseInt(row["user_id"], 10, 64)
		if err != nil {
			continue
		}
		if _, ok := seen[userId]; ok {
			continue
		}
		seen[userId] = struct{}{}
		targets = append(targets, userId)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets, nil
}

func (repo *SubscribersRepository) CountByGroup(ctx context.Context, groups []string) (map[string]int, error) {
	if err := repo.store.EnsureHeaders(ctx, repo.table, subsHeader); err != nil {
		return nil, err
	}
	rows, err := repo.store.ReadAll(ctx, repo.table)
	if err != nil {
		return nil, fmt.Errorf("failed to read subscriptions: %w", err)
	}
	counts := map[string]int{}
	for _, group := range groups {
		counts[group] = 0
	}
	for _, row := range rows {
		if containsGroup(groups, row["group"]) {
			counts[row["group"]]++
		}
	}
	return counts, nil
}

func containsGroup(groups []string, group string) bool {
	for _, tracked := range groups {
		if tracked == group {
			return true
		}
	}
	return false
}
