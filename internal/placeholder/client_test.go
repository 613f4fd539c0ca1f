package placeholder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theheadmen/jsonmock/internal/models"
	"github.com/theheadmen/jsonmock/internal/serverapi"
	"github.com/theheadmen/jsonmock/internal/storage/memory"
	"github.com/theheadmen/jsonmock/internal/validation"
)

func newMockClient(t *testing.T) *Client {
	source := memory.NewSource()
	dataset, err := source.Load(context.Background())
	require.NoError(t, err)

	ts := httptest.NewServer(serverapi.MakeChiServ(source, dataset))
	t.Cleanup(ts.Close)
	return NewClient(ts.URL, WithHTTPClient(ts.Client()))
}

// stubServer answers every request with body and counts the calls.
func stubServer(t *testing.T, status int, body string) (*Client, *atomic.Int32) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return NewClient(ts.URL+"/", WithHTTPClient(ts.Client())), &calls
}

func TestClientAgainstMockServer(t *testing.T) {
	client := newMockClient(t)
	ctx := context.Background()
	fixture := memory.Fixture()

	users, err := client.AllUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, fixture.Users, users)

	user, err := client.UserByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "João Silva", user.Name)

	posts, err := client.AllPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, fixture.Posts, posts)

	post, err := client.PostByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Post da Maria", post.Title)

	byUser, err := client.PostsByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, FilterPostsByUser(posts, 1), byUser)

	comments, err := client.AllComments(ctx)
	require.NoError(t, err)
	assert.Len(t, comments, 3)

	postComments, err := client.CommentsByPost(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, postComments, 2)

	none, err := client.CommentsByPost(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)

	todos, err := client.AllTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, fixture.Todos, todos)

	todo, err := client.TodoByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, models.Todo{UserID: 3, ID: 4, Title: "Ler livro", Completed: true}, todo)

	albums, err := client.AllAlbums(ctx)
	require.NoError(t, err)
	assert.Equal(t, fixture.Albums, albums)

	album, err := client.AlbumByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Álbum de Família", album.Title)
}

func TestClientStatusErrors(t *testing.T) {
	client := newMockClient(t)
	ctx := context.Background()

	_, err := client.UserByID(ctx, 999)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)

	_, err = client.AlbumByID(ctx, 42)
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)

	stub, _ := stubServer(t, http.StatusInternalServerError, `{"error":"Erro simulado"}`)
	_, err = stub.AllPosts(ctx)
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestClientInvalidArgument(t *testing.T) {
	client, calls := stubServer(t, http.StatusOK, `{}`)
	ctx := context.Background()

	_, err := client.UserByID(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = client.PostByID(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = client.TodoByID(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = client.AlbumByID(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = client.CommentsByPost(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = client.PostsByUser(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Equal(t, int32(0), calls.Load(), "no request must be sent for an invalid id")
}

func TestClientValidationErrors(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		body     string
		call     func(client *Client) error
		resource string
	}{
		{
			name:     "user without email",
			body:     `{"id":1,"name":"João","username":"joao"}`,
			call:     func(client *Client) error { _, err := client.UserByID(ctx, 1); return err },
			resource: "user",
		},
		{
			name:     "todo with string completed",
			body:     `{"userId":1,"id":1,"title":"t","completed":"no"}`,
			call:     func(client *Client) error { _, err := client.TodoByID(ctx, 1); return err },
			resource: "todo",
		},
		{
			name:     "second comment with bad email",
			body:     `[{"postId":1,"id":1,"name":"n","email":"a@b.com","body":"b"},{"postId":1,"id":2,"name":"n","email":"nope","body":"b"}]`,
			call:     func(client *Client) error { _, err := client.AllComments(ctx); return err },
			resource: "comment[1]",
		},
		{
			name:     "object instead of list",
			body:     `{"id":1}`,
			call:     func(client *Client) error { _, err := client.AllAlbums(ctx); return err },
			resource: "album",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, calls := stubServer(t, http.StatusOK, tc.body)
			err := tc.call(client)

			var validationErr *validation.ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.Equal(t, tc.resource, validationErr.Resource)
			assert.Equal(t, int32(1), calls.Load(), "validation errors are never retried")
		})
	}
}

func TestClientMalformedBody(t *testing.T) {
	client, _ := stubServer(t, http.StatusOK, `{"id":`)
	_, err := client.PostByID(context.Background(), 1)
	assert.Error(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("").BaseURL())
	assert.Equal(t, "http://localhost:8080", NewClient("http://localhost:8080/").BaseURL())
}
