package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wfunc/monopoly-game/internal/models"
)

func TestGameRecordRepository_Create(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)

	repo := NewGameRecordRepository(db)
	ctx := context.Background()

	record := CreateTestGameRecord("game_001", "483920")
	err := repo.Create(ctx, record)
	require.NoError(t, err)
	assert.NotZero(t, record.ID)

	// 重复加入码应该失败
	dup := CreateTestGameRecord("game_002", "483920")
	err = repo.Create(ctx, dup)
	assert.Error(t, err)
}

func TestGameRecordRepository_FindByCode(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)

	repo := NewGameRecordRepository(db)
	ctx := context.Background()

	record := CreateTestGameRecord("game_001", "123456")
	require.NoError(t, repo.Create(ctx, record))

	found, err := repo.FindByCode(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, "game_001", found.GameID)
	assert.Equal(t, "waiting", found.Status)

	_, err = repo.FindByCode(ctx, "999999")
	assert.Error(t, err)
}

func TestGameRecordRepository_Update(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)

	repo := NewGameRecordRepository(db)
	ctx := context.Background()

	record := CreateTestGameRecord("game_001", "123456")
	require.NoError(t, repo.Create(ctx, record))

	now := time.Now()
	record.Status = "active"
	record.StartedAt = &now
	require.NoError(t, repo.Update(ctx, record))

	found, err := repo.FindByGameID(ctx, "game_001")
	require.NoError(t, err)
	assert.Equal(t, "active", found.Status)
	assert.NotNil(t, found.StartedAt)
}

func TestGameRecordRepository_SavePlayer(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)

	repo := NewGameRecordRepository(db)
	ctx := context.Background()

	record := CreateTestGameRecord("game_001", "123456")
	require.NoError(t, repo.Create(ctx, record))

	player := CreateTestPlayerRecord("player_001", "game_001", "alice")
	require.NoError(t, repo.SavePlayer(ctx, player))

	// 再次保存应该更新而不是报错
	player.Position = 12
	player.Money = 1300
	require.NoError(t, repo.SavePlayer(ctx, player))

	found, err := repo.FindByGameID(ctx, "game_001")
	require.NoError(t, err)
	require.Len(t, found.Players, 1)
	assert.Equal(t, 12, found.Players[0].Position)
	assert.Equal(t, 1300, found.Players[0].Money)
}

func TestGameRecordRepository_SaveOwnership(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)

	repo := NewGameRecordRepository(db)
	ctx := context.Background()

	record := CreateTestGameRecord("game_001", "123456")
	require.NoError(t, repo.Create(ctx, record))

	ownership := &models.PropertyOwnership{
		GameID:      "game_001",
		SquareIndex: 1,
		OwnerID:     "player_001",
	}
	require.NoError(t, repo.SaveOwnership(ctx, ownership))

	// 更新同一格子的归属
	ownership2 := &models.PropertyOwnership{
		GameID:      "game_001",
		SquareIndex: 1,
		OwnerID:     "player_002",
		IsMortgaged: true,
	}
	require.NoError(t, repo.SaveOwnership(ctx, ownership2))

	found, err := repo.FindByGameID(ctx, "game_001")
	require.NoError(t, err)
	require.Len(t, found.Properties, 1)
	assert.Equal(t, "player_002", found.Properties[0].OwnerID)
	assert.True(t, found.Properties[0].IsMortgaged)
}

func TestGameRecordRepository_DeleteOwnershipByOwner(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)

	repo := NewGameRecordRepository(db)
	ctx := context.Background()

	record := CreateTestGameRecord("game_001", "123456")
	require.NoError(t, repo.Create(ctx, record))

	for _, idx := range []int{1, 3, 6} {
		require.NoError(t, repo.SaveOwnership(ctx, &models.PropertyOwnership{
			GameID:      "game_001",
			SquareIndex: idx,
			OwnerID:     "player_001",
		}))
	}
	require.NoError(t, repo.SaveOwnership(ctx, &models.PropertyOwnership{
		GameID:      "game_001",
		SquareIndex: 8,
		OwnerID:     "player_002",
	}))

	require.NoError(t, repo.DeleteOwnershipByOwner(ctx, "game_001", "player_001"))

	found, err := repo.FindByGameID(ctx, "game_001")
	require.NoError(t, err)
	require.Len(t, found.Properties, 1)
	assert.Equal(t, "player_002", found.Properties[0].OwnerID)
}

func TestGameRecordRepository_CountActive(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)

	repo := NewGameRecordRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, CreateTestGameRecord("game_001", "111111")))
	require.NoError(t, repo.Create(ctx, CreateTestGameRecord("game_002", "222222")))

	finished := CreateTestGameRecord("game_003", "333333")
	finished.Status = "finished"
	require.NoError(t, repo.Create(ctx, finished))

	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
