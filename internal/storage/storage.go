// Package storage предоставляет неизменяемый набор данных, который обслуживает mock-сервер,
// и интерфейс Source для его загрузки.
package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/theheadmen/jsonmock/internal/models"
)

// ErrIntegrity возвращается NewDataset, если данные нарушают уникальность id
// или ссылаются на несуществующего родителя.
var ErrIntegrity = errors.New("dataset integrity violation")

// Source определяет интерфейс для загрузки набора данных.
type Source interface {
	// Load читает все коллекции и строит снимок данных.
	Load(ctx context.Context) (*Dataset, error)

	// Ping проверяет, что источник доступен.
	Ping(ctx context.Context) error

	// Close освобождает ресурсы источника.
	Close() error
}

// Dataset неизменяемый снимок пяти коллекций. После создания не модифицируется,
// поэтому может читаться из любого количества горутин без блокировок.
type Dataset struct {
	users    []models.User
	posts    []models.Post
	comments []models.Comment
	todos    []models.Todo
	albums   []models.Album
}

// NewDataset копирует переданные коллекции и проверяет инварианты:
// уникальные id в каждой коллекции и существующие внешние ключи.
func NewDataset(users []models.User, posts []models.Post, comments []models.Comment, todos []models.Todo, albums []models.Album) (*Dataset, error) {
	dataset := &Dataset{
		users:    cloneOrEmpty(users),
		posts:    cloneOrEmpty(posts),
		comments: cloneOrEmpty(comments),
		todos:    cloneOrEmpty(todos),
		albums:   cloneOrEmpty(albums),
	}

	userIDs, err := uniqueIDs("users", dataset.users, func(u models.User) int { return u.ID })
	if err != nil {
		return nil, err
	}
	postIDs, err := uniqueIDs("posts", dataset.posts, func(p models.Post) int { return p.ID })
	if err != nil {
		return nil, err
	}
	if _, err := uniqueIDs("comments", dataset.comments, func(c models.Comment) int { return c.ID }); err != nil {
		return nil, err
	}
	if _, err := uniqueIDs("todos", dataset.todos, func(t models.Todo) int { return t.ID }); err != nil {
		return nil, err
	}
	if _, err := uniqueIDs("albums", dataset.albums, func(a models.Album) int { return a.ID }); err != nil {
		return nil, err
	}

	if err := foreignKeys("posts", "userId", dataset.posts, userIDs, func(p models.Post) int { return p.UserID }); err != nil {
		return nil, err
	}
	if err := foreignKeys("comments", "postId", dataset.comments, postIDs, func(c models.Comment) int { return c.PostID }); err != nil {
		return nil, err
	}
	if err := foreignKeys("todos", "userId", dataset.todos, userIDs, func(t models.Todo) int { return t.UserID }); err != nil {
		return nil, err
	}
	if err := foreignKeys("albums", "userId", dataset.albums, userIDs, func(a models.Album) int { return a.UserID }); err != nil {
		return nil, err
	}

	return dataset, nil
}

// NewDatasetFromDocument строит снимок из документа формата db.json.
func NewDatasetFromDocument(doc models.Document) (*Dataset, error) {
	return NewDataset(doc.Users, doc.Posts, doc.Comments, doc.Todos, doc.Albums)
}

// Document возвращает копию всех коллекций в формате db.json.
func (dataset *Dataset) Document() models.Document {
	return models.Document{
		Users:    dataset.Users(),
		Posts:    dataset.Posts(),
		Comments: dataset.Comments(),
		Todos:    dataset.Todos(),
		Albums:   dataset.Albums(),
	}
}

func (dataset *Dataset) Users() []models.User       { return slices.Clone(dataset.users) }
func (dataset *Dataset) Posts() []models.Post       { return slices.Clone(dataset.posts) }
func (dataset *Dataset) Comments() []models.Comment { return slices.Clone(dataset.comments) }
func (dataset *Dataset) Todos() []models.Todo       { return slices.Clone(dataset.todos) }
func (dataset *Dataset) Albums() []models.Album     { return slices.Clone(dataset.albums) }

func (dataset *Dataset) User(id int) (models.User, bool) {
	return findByID(dataset.users, id, func(u models.User) int { return u.ID })
}

func (dataset *Dataset) Post(id int) (models.Post, bool) {
	return findByID(dataset.posts, id, func(p models.Post) int { return p.ID })
}

func (dataset *Dataset) Comment(id int) (models.Comment, bool) {
	return findByID(dataset.comments, id, func(c models.Comment) int { return c.ID })
}

func (dataset *Dataset) Todo(id int) (models.Todo, bool) {
	return findByID(dataset.todos, id, func(t models.Todo) int { return t.ID })
}

func (dataset *Dataset) Album(id int) (models.Album, bool) {
	return findByID(dataset.albums, id, func(a models.Album) int { return a.ID })
}

// PostsByUser возвращает посты пользователя в исходном порядке.
func (dataset *Dataset) PostsByUser(userID int) []models.Post {
	return filterBy(dataset.posts, userID, func(p models.Post) int { return p.UserID })
}

// CommentsByPost возвращает комментарии поста в исходном порядке.
// Для несуществующего поста результат пустой, а не nil.
func (dataset *Dataset) CommentsByPost(postID int) []models.Comment {
	return filterBy(dataset.comments, postID, func(c models.Comment) int { return c.PostID })
}

func (dataset *Dataset) TodosByUser(userID int) []models.Todo {
	return filterBy(dataset.todos, userID, func(t models.Todo) int { return t.UserID })
}

func (dataset *Dataset) AlbumsByUser(userID int) []models.Album {
	return filterBy(dataset.albums, userID, func(a models.Album) int { return a.UserID })
}

func findByID[T any](items []T, id int, key func(T) int) (T, bool) {
	for _, item := range items {
		if key(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// filterBy один линейный проход, порядок сохраняется.
// Всегда возвращает не-nil срез, чтобы в JSON попадал [] вместо null.
func filterBy[T any](items []T, value int, key func(T) int) []T {
	result := make([]T, 0)
	for _, item := range items {
		if key(item) == value {
			result = append(result, item)
		}
	}
	return result
}

func cloneOrEmpty[T any](items []T) []T {
	if items == nil {
		return make([]T, 0)
	}
	return slices.Clone(items)
}

func uniqueIDs[T any](collection string, items []T, key func(T) int) (map[int]struct{}, error) {
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		id := key(item)
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: duplicate id %d in %s", ErrIntegrity, id, collection)
		}
		seen[id] = struct{}{}
	}
	return seen, nil
}

func foreignKeys[T any](collection, field string, items []T, parents map[int]struct{}, key func(T) int) error {
	for _, item := range items {
		ref := key(item)
		if _, ok := parents[ref]; !ok {
			return fmt.Errorf("%w: %s.%s=%d references a missing parent", ErrIntegrity, collection, field, ref)
		}
	}
	return nil
}
