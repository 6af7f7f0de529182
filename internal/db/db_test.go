package db_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"yatube/internal/db"
	"yatube/internal/models"
	"yatube/internal/testutil"
)

func TestStorageConstraints(t *testing.T) {
	conn := testutil.NewDB(t)
	user := testutil.CreateUser(t, conn, "user")
	author := testutil.CreateUser(t, conn, "author")

	require.Error(t, conn.Create(&models.User{Username: "user", Password: "x"}).Error)
	require.NoError(t, conn.Create(&models.Group{Title: "A", Slug: "dup"}).Error)
	require.Error(t, conn.Create(&models.Group{Title: "B", Slug: "dup"}).Error)

	testutil.CreateFollow(t, conn, user, author)
	require.Error(t, conn.Create(&models.Follow{UserID: user.ID, AuthorID: author.ID}).Error)
	require.Error(t, conn.Create(&models.Follow{UserID: user.ID, AuthorID: user.ID}).Error)
}

func TestSeedGroups(t *testing.T) {
	conn := testutil.NewDB(t)

	created, err := db.SeedGroups(conn, db.DefaultGroups)
	require.NoError(t, err)
	require.Equal(t, len(db.DefaultGroups), created)

	created, err = db.SeedGroups(conn, db.DefaultGroups)
	require.NoError(t, err)
	require.Zero(t, created)

	var count int64
	require.NoError(t, conn.Model(&models.Group{}).Count(&count).Error)
	require.Equal(t, int64(len(db.DefaultGroups)), count)
}

func TestMigrateIsIdempotent(t *testing.T) {
	conn := testutil.NewDB(t)
	require.NoError(t, db.Migrate(conn))
}
