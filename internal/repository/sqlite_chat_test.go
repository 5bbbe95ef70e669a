package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRepo_ListRecentReturnsNewestOldestFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteChatRepo(database)

	base := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		m := testutil.NewTestChatMessage(domain.RoleUser, fmt.Sprintf("msg-%d", i), base.Add(time.Duration(i)*time.Second))
		require.NoError(t, repo.Append(ctx, m))
	}

	got, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "msg-2", got[0].Content)
	assert.Equal(t, "msg-3", got[1].Content)
	assert.Equal(t, "msg-4", got[2].Content)
}

func TestChatRepo_SameTimestampKeepsInsertOrder(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteChatRepo(database)

	at := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	user := testutil.NewTestChatMessage(domain.RoleUser, "plan dao", at)
	reply := testutil.NewTestChatMessage(domain.RoleAssistant, "Ajker plan ready!", at)
	reply.PlanDay = domain.PlanToday
	require.NoError(t, repo.Append(ctx, user))
	require.NoError(t, repo.Append(ctx, reply))

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.RoleUser, got[0].Role)
	assert.Equal(t, domain.RoleAssistant, got[1].Role)
	assert.Equal(t, domain.PlanToday, got[1].PlanDay)
	assert.Equal(t, domain.PlanDay(""), got[0].PlanDay)
}

func TestChatRepo_NonPositiveLimit(t *testing.T) {
	repo := NewSQLiteChatRepo(testutil.NewTestDB(t))
	got, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
