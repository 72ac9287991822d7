package service

import (
	"bitwise74/game-clips/internal/model"
	"bitwise74/game-clips/pkg/security"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDashboardEmpty(t *testing.T) {
	gdb := newTestDB(t)
	alice := mustRegister(t, gdb, "alice")

	d, err := BuildDashboard(gdb, security.Identity{UserID: alice, Username: "alice"})
	require.NoError(t, err)
	assert.NotNil(t, d.Rows)
	assert.Empty(t, d.Rows)
	assert.Equal(t, alice, d.ViewerID)
	assert.Equal(t, "alice", d.ViewerUsername)
}

func TestBuildDashboardRowsMatchUploaders(t *testing.T) {
	gdb := newTestDB(t)
	alice := mustRegister(t, gdb, "alice")
	bob := mustRegister(t, gdb, "bobby")

	_, err := SubmitVideo(gdb, alice, "http://x/1", uintPtr(2))
	require.NoError(t, err)
	_, err = SubmitVideo(gdb, bob, "http://x/2", nil)
	require.NoError(t, err)
	_, err = SubmitVideo(gdb, alice, "http://x/3", uintPtr(1))
	require.NoError(t, err)

	d, err := BuildDashboard(gdb, security.Identity{UserID: bob, Username: "bobby"})
	require.NoError(t, err)
	require.Len(t, d.Rows, 3)

	owners := map[string]string{
		"http://x/1": "alice",
		"http://x/2": "bobby",
		"http://x/3": "alice",
	}

	for _, r := range d.Rows {
		assert.Equal(t, owners[r.Link], r.Username, r.Link)
		assert.False(t, r.Orphan)
	}

	assert.Equal(t, "http://x/1", d.Rows[0].Link)
	require.NotNil(t, d.Rows[0].GameTag)
	assert.Equal(t, uint(2), *d.Rows[0].GameTag)
	assert.Equal(t, "fortnite.png", d.Rows[0].GameIcon)

	assert.Nil(t, d.Rows[1].GameTag)
	assert.Empty(t, d.Rows[1].GameIcon)

	assert.Equal(t, "minecraft.png", d.Rows[2].GameIcon)
}

func TestBuildDashboardOrphanRow(t *testing.T) {
	gdb := newTestDB(t)
	alice := mustRegister(t, gdb, "alice")

	_, err := SubmitVideo(gdb, alice, "http://x/1", nil)
	require.NoError(t, err)

	// Only reachable on a store that doesn't enforce foreign keys
	require.NoError(t, gdb.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, gdb.Create(&model.Video{Link: "http://x/orphan", UsersID: 999, GameTag: uintPtr(77)}).Error)

	d, err := BuildDashboard(gdb, security.Identity{UserID: alice, Username: "alice"})
	require.NoError(t, err)
	require.Len(t, d.Rows, 2)

	assert.Equal(t, "alice", d.Rows[0].Username)
	assert.False(t, d.Rows[0].Orphan)

	orphan := d.Rows[1]
	assert.Equal(t, "http://x/orphan", orphan.Link)
	assert.Equal(t, OrphanUsername, orphan.Username)
	assert.True(t, orphan.Orphan)
	require.NotNil(t, orphan.GameTag)
	assert.Equal(t, uint(77), *orphan.GameTag)
	assert.Empty(t, orphan.GameIcon)
}
