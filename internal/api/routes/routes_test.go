package routes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Postboard/internal/core/posts"
	"Postboard/internal/core/users"
	"Postboard/internal/db"
	"Postboard/internal/db/sqlstore"
	"Postboard/internal/web"
)

type pageBody struct {
	NextCursor *int64 `json:"nextCursor"`
	Posts      []struct {
		User struct {
			Name string `json:"name"`
		} `json:"user"`
		Title  string `json:"title"`
		ID     int64  `json:"id"`
		UserID int64  `json:"userId"`
	} `json:"posts"`
	HasMore bool `json:"hasMore"`
}

func (p pageBody) ids() []int64 {
	ids := make([]int64, 0, len(p.Posts))
	for _, post := range p.Posts {
		ids = append(ids, post.ID)
	}
	return ids
}

// newTestServer wires the real stack over an in-memory SQLite store.
// Users 7 and 8 exist; posts 1..11 belong to 8 except 3 and 9, which belong to 7.
func newTestServer(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(conn, db.DriverSQLite))

	_, err = conn.ExecContext(ctx, `INSERT INTO users (id, name, username) VALUES (7, 'Kurtis Weissnat', 'Elwyn.Skiles'), (8, 'Nicholas Runolfsdottir V', 'Maxime_Nienow')`)
	require.NoError(t, err)
	for id := 1; id <= 11; id++ {
		author := 8
		if id == 3 || id == 9 {
			author = 7
		}
		_, err := conn.ExecContext(ctx, `INSERT INTO posts (id, user_id, title, body) VALUES ($1, $2, $3, $4)`,
			id, author, fmt.Sprintf("title %d", id), "body")
		require.NoError(t, err)
	}

	postService := posts.NewPostService(sqlstore.NewPostRepository(conn))
	userService := users.NewUserService(sqlstore.NewUserRepository(conn))

	r := chi.NewRouter()
	RegisterAPIRoutes(r, postService, userService, APIConfig{AllowedOrigins: []string{"http://localhost:3000"}})
	require.NoError(t, RegisterWebRoutes(r, postService, userService,
		web.NewSessionStore([]byte("routes-test-secret"), false)))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, conn
}

func getPage(t *testing.T, server *httptest.Server, query string) pageBody {
	t.Helper()
	resp, err := http.Get(server.URL + "/api/posts" + query)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body pageBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func deletePost(t *testing.T, server *httptest.Server, query string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/posts"+query, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestPostsAPI_Pagination(t *testing.T) {
	server, _ := newTestServer(t)

	first := getPage(t, server, "")
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, first.ids())
	assert.True(t, first.HasMore)
	require.NotNil(t, first.NextCursor)
	assert.Equal(t, int64(10), *first.NextCursor)
	assert.Equal(t, "Kurtis Weissnat", first.Posts[2].User.Name)

	second := getPage(t, server, "?cursor=10")
	assert.Equal(t, []int64{11}, second.ids())
	assert.False(t, second.HasMore)
	assert.Nil(t, second.NextCursor)

	// Malformed parameters fall back to the unfiltered first page
	lenient := getPage(t, server, "?cursor=abc&userId=-1")
	assert.Equal(t, first.ids(), lenient.ids())
}

func TestPostsAPI_FilterAndDelete(t *testing.T) {
	server, conn := newTestServer(t)

	byAuthor := getPage(t, server, "?userId=7")
	assert.Equal(t, []int64{3, 9}, byAuthor.ids())
	assert.False(t, byAuthor.HasMore)
	assert.Nil(t, byAuthor.NextCursor)

	resp := deletePost(t, server, "?id=3")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	afterDelete := getPage(t, server, "?userId=7")
	assert.Equal(t, []int64{9}, afterDelete.ids())

	// The author is untouched
	var name string
	require.NoError(t, conn.QueryRow(`SELECT name FROM users WHERE id = 7`).Scan(&name))
	assert.Equal(t, "Kurtis Weissnat", name)

	again := deletePost(t, server, "?id=3")
	assert.Equal(t, http.StatusNotFound, again.StatusCode)

	missing := deletePost(t, server, "")
	assert.Equal(t, http.StatusBadRequest, missing.StatusCode)

	unknown := getPage(t, server, "?userId=999")
	assert.Empty(t, unknown.Posts)
	assert.False(t, unknown.HasMore)
}

func TestUsersAPI(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/users/search?q=KURT")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Users []*users.UserSummary `json:"users"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Users, 1)
	assert.Equal(t, int64(7), body.Users[0].ID)

	single, err := http.Get(server.URL + "/api/users/8")
	require.NoError(t, err)
	defer func() { _ = single.Body.Close() }()
	assert.Equal(t, http.StatusOK, single.StatusCode)

	absent, err := http.Get(server.URL + "/api/users/404")
	require.NoError(t, err)
	defer func() { _ = absent.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, absent.StatusCode)
}

func TestAPI_CORSPreflight(t *testing.T) {
	server, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/posts", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://elsewhere.example")
	other, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = other.Body.Close() }()
	assert.Empty(t, other.Header.Get("Access-Control-Allow-Origin"))
}

func TestWebFeed(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/?userId=7")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
}
