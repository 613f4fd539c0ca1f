package placeholder

import (
	"context"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/theheadmen/jsonmock/internal/models"
	"github.com/theheadmen/jsonmock/internal/validation"
)

func (c *Client) AllPosts(ctx context.Context) ([]models.Post, error) {
	return fetchList[models.Post](ctx, c, "/posts", nil, "post", validation.ValidatePost)
}

func (c *Client) PostByID(ctx context.Context, id int) (models.Post, error) {
	if err := checkID("post id", id); err != nil {
		return models.Post{}, err
	}
	return fetchOne[models.Post](ctx, c, idPath("posts", id), "post", validation.ValidatePost)
}

// PostsByUser asks the server to filter with ?userId=.
func (c *Client) PostsByUser(ctx context.Context, userID int) ([]models.Post, error) {
	if err := checkID("user id", userID); err != nil {
		return nil, err
	}
	query := url.Values{"userId": []string{strconv.Itoa(userID)}}
	return fetchList[models.Post](ctx, c, "/posts", query, "post", validation.ValidatePost)
}

func FilterPostsByUser(posts []models.Post, userID int) []models.Post {
	result := make([]models.Post, 0)
	for _, post := range posts {
		if post.UserID == userID {
			result = append(result, post)
		}
	}
	return result
}

// AverageTitleLength returns the mean title length in characters, 0 for no posts.
func AverageTitleLength(posts []models.Post) float64 {
	if len(posts) == 0 {
		return 0
	}
	total := 0
	for _, post := range posts {
		total += utf8.RuneCountInString(post.Title)
	}
	return float64(total) / float64(len(posts))
}
