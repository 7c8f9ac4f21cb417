package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Postboard/internal/core/posts"
	"Postboard/internal/core/seed"
	"Postboard/internal/core/users"
	"Postboard/internal/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.Migrate(conn, db.DriverSQLite))
	return conn
}

// testDataset builds users 7 and 8 plus posts 1..count, where author 7 owns ownedBy7
func testDataset(count int64, ownedBy7 ...int64) *seed.Dataset {
	owned := make(map[int64]bool, len(ownedBy7))
	for _, id := range ownedBy7 {
		owned[id] = true
	}

	data := &seed.Dataset{
		Companies: []*users.Company{
			{Name: "Romaguera-Crona", CatchPhrase: "Multi-layered client-server neural-net", BS: "harness real-time e-markets"},
		},
		Users: []*seed.UserRecord{
			{
				CompanyName: "Romaguera-Crona",
				User: &users.User{
					ID: 7, Name: "Kurtis Weissnat", Username: "Elwyn.Skiles", Email: "Telly.Hoeger@billy.biz",
					Address: users.Address{Street: "Rex Trail", City: "Howemouth", Lat: "24.8918", Lng: "21.8984"},
				},
			},
			{
				CompanyName: "Romaguera-Crona",
				User:        &users.User{ID: 8, Name: "Nicholas Runolfsdottir V", Username: "Maxime_Nienow"},
			},
		},
	}
	for id := int64(1); id <= count; id++ {
		author := int64(8)
		if owned[id] {
			author = 7
		}
		data.Posts = append(data.Posts, &posts.Post{
			ID:     id,
			UserID: author,
			Title:  fmt.Sprintf("title %d", id),
			Body:   fmt.Sprintf("body %d", id),
		})
	}
	return data
}

func importDataset(t *testing.T, conn *sql.DB, data *seed.Dataset) *seed.ImportStats {
	t.Helper()
	stats, err := NewSeedRepository(conn, db.DriverSQLite).Import(context.Background(), data)
	require.NoError(t, err)
	return stats
}

func postIDs(views []*posts.PostView) []int64 {
	ids := make([]int64, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}

func int64Ptr(v int64) *int64 { return &v }

func TestPostRepo_ListPage_Keyset(t *testing.T) {
	conn := setupTestDB(t)
	importDataset(t, conn, testDataset(11))
	repo := NewPostRepository(conn)
	ctx := context.Background()

	first, err := repo.ListPage(ctx, nil, nil, posts.PageSize+1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, postIDs(first))

	rest, err := repo.ListPage(ctx, nil, int64Ptr(10), posts.PageSize+1)
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, postIDs(rest))

	empty, err := repo.ListPage(ctx, nil, int64Ptr(11), posts.PageSize+1)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPostRepo_ListPage_JoinsAuthorName(t *testing.T) {
	conn := setupTestDB(t)
	importDataset(t, conn, testDataset(3, 2))
	repo := NewPostRepository(conn)

	views, err := repo.ListPage(context.Background(), nil, nil, 10)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, int64(7), views[1].UserID)
	require.NotNil(t, views[1].User)
	assert.Equal(t, "Kurtis Weissnat", views[1].User.Name)
	assert.Equal(t, "title 2", views[1].Title)
	assert.Equal(t, "body 2", views[1].Body)
	assert.Equal(t, "Nicholas Runolfsdottir V", views[0].User.Name)
}

func TestPostRepo_ListPage_InvalidLimit(t *testing.T) {
	conn := setupTestDB(t)
	_, err := NewPostRepository(conn).ListPage(context.Background(), nil, nil, 0)
	assert.Error(t, err)
}

func TestPostService_OverSQLite(t *testing.T) {
	conn := setupTestDB(t)
	importDataset(t, conn, testDataset(11, 3, 9))
	service := posts.NewPostService(NewPostRepository(conn))
	ctx := context.Background()

	t.Run("first page", func(t *testing.T) {
		page, err := service.GetPage(ctx, posts.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, postIDs(page.Posts))
		assert.True(t, page.HasMore)
		require.NotNil(t, page.NextCursor)
		assert.Equal(t, int64(10), *page.NextCursor)
	})

	t.Run("second page", func(t *testing.T) {
		page, err := service.GetPage(ctx, posts.PageRequest{Cursor: int64Ptr(10)})
		require.NoError(t, err)
		assert.Equal(t, []int64{11}, postIDs(page.Posts))
		assert.False(t, page.HasMore)
		assert.Nil(t, page.NextCursor)
	})

	t.Run("author filter", func(t *testing.T) {
		page, err := service.GetPage(ctx, posts.PageRequest{UserID: int64Ptr(7)})
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 9}, postIDs(page.Posts))
		assert.False(t, page.HasMore)
		assert.Nil(t, page.NextCursor)
	})

	t.Run("delete then filter", func(t *testing.T) {
		require.NoError(t, service.DeletePost(ctx, 3))

		page, err := service.GetPage(ctx, posts.PageRequest{UserID: int64Ptr(7)})
		require.NoError(t, err)
		assert.Equal(t, []int64{9}, postIDs(page.Posts))
	})
}

func TestPostRepo_GetByID(t *testing.T) {
	conn := setupTestDB(t)
	importDataset(t, conn, testDataset(2, 1))
	repo := NewPostRepository(conn)

	view, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.ID)
	assert.Equal(t, "Kurtis Weissnat", view.User.Name)

	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestPostRepo_Delete(t *testing.T) {
	conn := setupTestDB(t)
	importDataset(t, conn, testDataset(4, 3))
	repo := NewPostRepository(conn)
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, 3))

	t.Run("second delete reports not found", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, 3), posts.ErrNotFound)
	})

	t.Run("author survives", func(t *testing.T) {
		user, err := NewUserRepository(conn).GetByID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "Kurtis Weissnat", user.Name)
	})

	t.Run("ids are not reused", func(t *testing.T) {
		res, err := conn.ExecContext(ctx,
			`INSERT INTO posts (user_id, title, body) VALUES ($1, $2, $3)`, 8, "fresh", "post")
		require.NoError(t, err)
		id, err := res.LastInsertId()
		require.NoError(t, err)
		assert.Greater(t, id, int64(4))
	})
}

func TestPostRepo_RejectsOrphanPost(t *testing.T) {
	conn := setupTestDB(t)
	importDataset(t, conn, testDataset(1))

	_, err := conn.ExecContext(context.Background(),
		`INSERT INTO posts (user_id, title, body) VALUES ($1, $2, $3)`, 404, "orphan", "post")
	require.Error(t, err)
	assert.True(t, isForeignKeyViolation(err))
}

func TestUserRepo_GetByID(t *testing.T) {
	conn := setupTestDB(t)
	importDataset(t, conn, testDataset(1))
	repo := NewUserRepository(conn)

	user, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Elwyn.Skiles", user.Username)
	assert.Equal(t, "Telly.Hoeger@billy.biz", user.Email)
	assert.Equal(t, "Howemouth", user.Address.City)
	assert.Equal(t, "24.8918", user.Address.Lat)
	assert.Empty(t, user.Phone)
	require.NotNil(t, user.CompanyID)

	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, users.ErrUserNotFound)
}

func TestUserRepo_Search(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	names := []string{"Leanne Graham", "Ervin Howell", "Clementine Bauch", "Patricia Lebsack",
		"Chelsey Dietrich", "Mrs. Dennis Schulist", "Kurtis Weissnat", "Nicholas Runolfsdottir V",
		"Glenna Reichert", "Clementina DuBuque"}
	for i, name := range names {
		_, err := conn.ExecContext(ctx, `INSERT INTO users (id, name, username) VALUES ($1, $2, $3)`,
			i+1, name, fmt.Sprintf("user_%d", i+1))
		require.NoError(t, err)
	}
	repo := NewUserRepository(conn)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "case insensitive substring",
			query: "CLEM",
			want:  []string{"Clementina DuBuque", "Clementine Bauch"},
		},
		{
			name:  "empty query lists alphabetically",
			query: "",
			want:  []string{"Chelsey Dietrich", "Clementina DuBuque", "Clementine Bauch", "Ervin Howell", "Glenna Reichert"},
		},
		{
			name:  "matches username",
			query: "user_7",
			want:  []string{"Kurtis Weissnat"},
		},
		{
			name:  "wildcards are literal",
			query: "%",
			want:  []string{},
		},
		{
			name:  "no match",
			query: "zzz",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.Search(ctx, tt.query, users.SearchLimit)
			require.NoError(t, err)

			got := make([]string, 0, len(found))
			for _, u := range found {
				got = append(got, u.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("limit is applied", func(t *testing.T) {
		found, err := repo.Search(ctx, "e", 3)
		require.NoError(t, err)
		assert.Len(t, found, 3)
	})
}

func TestSeedRepo_ImportIsIdempotent(t *testing.T) {
	conn := setupTestDB(t)
	data := testDataset(5, 2)

	stats := importDataset(t, conn, data)
	assert.Equal(t, &seed.ImportStats{Companies: 1, Users: 2, Posts: 5}, stats)

	again := importDataset(t, conn, data)
	assert.Equal(t, &seed.ImportStats{}, again)

	var count int
	require.NoError(t, conn.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM posts`).Scan(&count))
	assert.Equal(t, 5, count)
}

func TestSeedRepo_ImportRollsBackOnOrphan(t *testing.T) {
	conn := setupTestDB(t)
	data := testDataset(2)
	data.Posts = append(data.Posts, &posts.Post{ID: 3, UserID: 404, Title: "orphan", Body: "post"})

	_, err := NewSeedRepository(conn, db.DriverSQLite).Import(context.Background(), data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing user 404")

	var count int
	require.NoError(t, conn.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Zero(t, count)
}

func TestSeedRepo_Reset(t *testing.T) {
	conn := setupTestDB(t)
	importDataset(t, conn, testDataset(3))
	repo := NewSeedRepository(conn, db.DriverSQLite)
	ctx := context.Background()

	require.NoError(t, repo.Reset(ctx))

	for _, table := range []string{"posts", "users", "companies"} {
		var count int
		require.NoError(t, conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count))
		assert.Zero(t, count, table)
	}
}
