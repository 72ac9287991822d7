package service

import (
	"bitwise74/game-clips/db"
	"bitwise74/game-clips/internal/model"
	"bitwise74/game-clips/pkg/security"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testGames = []string{"minecraft.png", "fortnite.png", "valorant.png"}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.New(db.Options{
		Driver:       "sqlite",
		DSN:          ":memory:?_foreign_keys=on",
		SeedGames:    testGames,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)

	t.Cleanup(func() { db.Close(gdb) })
	return gdb
}

func testHasher() *security.ArgonHash {
	return &security.ArgonHash{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
}

func mustRegister(t *testing.T, gdb *gorm.DB, username string) uint {
	t.Helper()

	id, err := RegisterUser(gdb, username, "hash-"+username)
	require.NoError(t, err)
	return id
}

func count(t *testing.T, gdb *gorm.DB, m any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, gdb.Model(m).Count(&n).Error)
	return n
}

func uintPtr(v uint) *uint { return &v }

func TestSeedGamesRunsOnce(t *testing.T) {
	gdb := newTestDB(t)

	games, err := ListGames(gdb)
	require.NoError(t, err)
	require.Len(t, games, len(testGames))
	assert.Equal(t, "fortnite.png", games[1].Icons)
	assert.Equal(t, uint(2), games[1].ID)

	assert.Equal(t, int64(1), count(t, gdb, &model.Migration{}))
}
