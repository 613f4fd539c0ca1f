// Package serverapi serves the fixed dataset over HTTP with chi.
package serverapi

import (
	_ "embed"
	"net/http"
	"net/url"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/theheadmen/jsonmock/internal/logger"
	"github.com/theheadmen/jsonmock/internal/models"
	"github.com/theheadmen/jsonmock/internal/storage"
)

const (
	userNotFoundMessage   = "Usuário não encontrado"
	postNotFoundMessage   = "Post não encontrado"
	todoNotFoundMessage   = "Todo não encontrado"
	albumNotFoundMessage  = "Álbum não encontrado"
	simulatedErrorMessage = "Erro simulado"
	internalErrorMessage  = "Erro interno"
)

//go:embed public/index.html
var landingPage []byte

// Same output as JSON.stringify: no HTML escaping, no trailing newline.
var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

type ServerDataStore struct {
	source  storage.Source
	dataset *storage.Dataset
}

// NewServerDataStore wraps an already loaded dataset. source is only used for /ping.
func NewServerDataStore(source storage.Source, dataset *storage.Dataset) *ServerDataStore {
	return &ServerDataStore{
		source:  source,
		dataset: dataset,
	}
}

func MakeChiServ(source storage.Source, dataset *storage.Dataset) chi.Router {
	dataStore := NewServerDataStore(source, dataset)
	router := chi.NewRouter()

	router.Use(requestIDMiddleware)
	// Add the logger middleware
	router.Use(loggerMiddleware)
	router.Use(recoverMiddleware)
	router.Use(middleware.StripSlashes)
	// Add gzip middleware
	router.Use(middleware.Compress(5, "text/html", "application/json"))

	router.Get("/", dataStore.LandingHandler)
	router.Get("/ping", dataStore.pingHandler)
	router.Get("/error", dataStore.ErrorHandler)

	router.Get("/users", dataStore.UsersHandler)
	router.Get("/users/{id}", dataStore.UserHandler)

	router.Get("/posts", dataStore.PostsHandler)
	router.Get("/posts/{id}", dataStore.PostHandler)
	router.Get("/posts/{id}/comments", dataStore.PostCommentsHandler)

	router.Get("/comments", dataStore.CommentsHandler)

	router.Get("/todos", dataStore.TodosHandler)
	router.Get("/todos/{id}", dataStore.TodoHandler)

	router.Get("/albums", dataStore.AlbumsHandler)
	router.Get("/albums/{id}", dataStore.AlbumHandler)
	return router
}

func (dataStore *ServerDataStore) LandingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(landingPage)
}

// ErrorHandler always fails; collaborators use it to exercise their error paths.
func (dataStore *ServerDataStore) ErrorHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: simulatedErrorMessage})
}

func (dataStore *ServerDataStore) UsersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dataStore.dataset.Users())
}

func (dataStore *ServerDataStore) UserHandler(w http.ResponseWriter, r *http.Request) {
	writeItem(w, r, dataStore.dataset.User, userNotFoundMessage)
}

func (dataStore *ServerDataStore) PostsHandler(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, "userId", dataStore.dataset.Posts, dataStore.dataset.PostsByUser)
}

func (dataStore *ServerDataStore) PostHandler(w http.ResponseWriter, r *http.Request) {
	writeItem(w, r, dataStore.dataset.Post, postNotFoundMessage)
}

// PostCommentsHandler never answers 404: an unknown post simply has no comments.
func (dataStore *ServerDataStore) PostCommentsHandler(w http.ResponseWriter, r *http.Request) {
	comments := []models.Comment{}
	if postID, ok := parseInt(pathParam(r, "id")); ok {
		comments = dataStore.dataset.CommentsByPost(postID)
	}
	writeJSON(w, http.StatusOK, comments)
}

func (dataStore *ServerDataStore) CommentsHandler(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, "postId", dataStore.dataset.Comments, dataStore.dataset.CommentsByPost)
}

func (dataStore *ServerDataStore) TodosHandler(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, "userId", dataStore.dataset.Todos, dataStore.dataset.TodosByUser)
}

func (dataStore *ServerDataStore) TodoHandler(w http.ResponseWriter, r *http.Request) {
	writeItem(w, r, dataStore.dataset.Todo, todoNotFoundMessage)
}

func (dataStore *ServerDataStore) AlbumsHandler(w http.ResponseWriter, r *http.Request) {
	writeList(w, r, "userId", dataStore.dataset.Albums, dataStore.dataset.AlbumsByUser)
}

func (dataStore *ServerDataStore) AlbumHandler(w http.ResponseWriter, r *http.Request) {
	writeItem(w, r, dataStore.dataset.Album, albumNotFoundMessage)
}

func (dataStore *ServerDataStore) pingHandler(w http.ResponseWriter, r *http.Request) {
	if err := dataStore.source.Ping(r.Context()); err != nil {
		logger.Log.Info("Can't ping dataset source", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, models.StatusResponse{Status: "ok"})
}

// writeList answers with the whole collection unless the filter parameter is
// present and non-empty. A value that is not a number matches nothing.
func writeList[T any](w http.ResponseWriter, r *http.Request, param string, all func() []T, filter func(int) []T) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		writeJSON(w, http.StatusOK, all())
		return
	}

	value, ok := parseInt(raw)
	if !ok {
		logger.Log.Debug("filter value is not a number", zap.String("param", param), zap.String("value", raw))
		writeJSON(w, http.StatusOK, []T{})
		return
	}
	writeJSON(w, http.StatusOK, filter(value))
}

// writeItem looks the {id} path parameter up. Anything that does not parse as a
// number goes down the same 404 path as an id that is simply absent.
func writeItem[T any](w http.ResponseWriter, r *http.Request, find func(int) (T, bool), notFound string) {
	rawID := pathParam(r, "id")
	if id, ok := parseInt(rawID); ok {
		if item, found := find(id); found {
			writeJSON(w, http.StatusOK, item)
			return
		}
	}

	logger.Log.Info("cannot find entity by id", zap.String("uri", r.URL.Path), zap.String("id", rawID))
	writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: notFound})
}

// pathParam returns the decoded route parameter. When the client escaped the path
// chi routes on RawPath, so "%31" would otherwise reach the handler as is.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	value, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Log.Error("error encoding response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Log.Debug("error writing response", zap.Error(err))
	}
}
