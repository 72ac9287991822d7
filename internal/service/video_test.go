package service

import (
	"bitwise74/game-clips/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSubmitVideo(t *testing.T) {
	gdb := newTestDB(t)
	alice := mustRegister(t, gdb, "alice")

	id, err := SubmitVideo(gdb, alice, "http://x/1", uintPtr(2))
	require.NoError(t, err)

	var v model.Video
	require.NoError(t, gdb.First(&v, id).Error)
	assert.Equal(t, "http://x/1", v.Link)
	assert.Equal(t, alice, v.UsersID)
	require.NotNil(t, v.GameTag)
	assert.Equal(t, uint(2), *v.GameTag)
}

func TestSubmitVideoWithoutGame(t *testing.T) {
	gdb := newTestDB(t)
	alice := mustRegister(t, gdb, "alice")

	id, err := SubmitVideo(gdb, alice, "not even a url", nil)
	require.NoError(t, err)

	var v model.Video
	require.NoError(t, gdb.First(&v, id).Error)
	assert.Nil(t, v.GameTag)
}

func TestSubmitVideoDuplicateLink(t *testing.T) {
	gdb := newTestDB(t)
	alice := mustRegister(t, gdb, "alice")
	bob := mustRegister(t, gdb, "bobby")

	_, err := SubmitVideo(gdb, alice, "http://x/1", nil)
	require.NoError(t, err)

	_, err = SubmitVideo(gdb, bob, "http://x/1", uintPtr(1))
	assert.ErrorIs(t, err, ErrDuplicateLink)
	assert.Equal(t, int64(1), count(t, gdb, &model.Video{}))
}

func TestSubmitVideoUnknownGame(t *testing.T) {
	gdb := newTestDB(t)
	alice := mustRegister(t, gdb, "alice")

	_, err := SubmitVideo(gdb, alice, "http://x/1", uintPtr(99))
	assert.ErrorIs(t, err, ErrUnknownGameTag)
	assert.Equal(t, int64(0), count(t, gdb, &model.Video{}))
}

func TestSubmitVideoUnknownUser(t *testing.T) {
	gdb := newTestDB(t)

	_, err := SubmitVideo(gdb, 999, "http://x/1", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownGameTag)

	game := uint(1)
	_, err = SubmitVideo(gdb, 999, "http://x/2", &game)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownGameTag)
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)

	assert.Equal(t, int64(0), count(t, gdb, &model.Video{}))
}
