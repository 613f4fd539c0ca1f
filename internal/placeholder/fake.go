package placeholder

import (
	"fmt"
	"math/rand"

	"github.com/theheadmen/jsonmock/internal/models"
)

// maxFakeID bounds ids handed out to fake objects: [0, maxFakeID).
const maxFakeID = 10000

// IDSource supplies pseudo-random ids. *rand.Rand satisfies it.
type IDSource interface {
	Intn(n int) int
}

// IDSourceFunc adapts a function to IDSource.
type IDSourceFunc func(n int) int

func (f IDSourceFunc) Intn(n int) int { return f(n) }

// Faker builds detached objects for tests and load scripts. They are never
// inserted into any served collection.
type Faker struct {
	ids IDSource
}

// NewFaker uses ids for id generation; nil means the global math/rand source,
// which is safe for concurrent use.
func NewFaker(ids IDSource) *Faker {
	if ids == nil {
		ids = IDSourceFunc(rand.Intn)
	}
	return &Faker{ids: ids}
}

func (f *Faker) Post(userID int, title, body string) (models.Post, error) {
	if userID == 0 || title == "" || body == "" {
		return models.Post{}, fmt.Errorf("%w: userId, title and body are required", ErrInvalidArgument)
	}
	return models.Post{UserID: userID, ID: f.ids.Intn(maxFakeID), Title: title, Body: body}, nil
}

func (f *Faker) Comment(postID int, name, email, body string) (models.Comment, error) {
	if postID == 0 || name == "" || email == "" || body == "" {
		return models.Comment{}, fmt.Errorf("%w: postId, name, email and body are required", ErrInvalidArgument)
	}
	return models.Comment{PostID: postID, ID: f.ids.Intn(maxFakeID), Name: name, Email: email, Body: body}, nil
}

func (f *Faker) Todo(userID int, title string, completed bool) (models.Todo, error) {
	if userID == 0 || title == "" {
		return models.Todo{}, fmt.Errorf("%w: userId and title are required", ErrInvalidArgument)
	}
	return models.Todo{UserID: userID, ID: f.ids.Intn(maxFakeID), Title: title, Completed: completed}, nil
}
