package placeholder

import (
	"context"
	"strings"

	"github.com/theheadmen/jsonmock/internal/models"
	"github.com/theheadmen/jsonmock/internal/validation"
)

func (c *Client) AllComments(ctx context.Context) ([]models.Comment, error) {
	return fetchList[models.Comment](ctx, c, "/comments", nil, "comment", validation.ValidateComment)
}

// CommentsByPost uses the nested /posts/{id}/comments route.
func (c *Client) CommentsByPost(ctx context.Context, postID int) ([]models.Comment, error) {
	if err := checkID("post id", postID); err != nil {
		return nil, err
	}
	return fetchList[models.Comment](ctx, c, idPath("posts", postID)+"/comments", nil, "comment", validation.ValidateComment)
}

// FilterCommentsByEmail keeps comments whose email contains fragment, usually a domain.
func FilterCommentsByEmail(comments []models.Comment, fragment string) []models.Comment {
	result := make([]models.Comment, 0)
	for _, comment := range comments {
		if strings.Contains(comment.Email, fragment) {
			result = append(result, comment)
		}
	}
	return result
}

func CountComments(comments []models.Comment) int {
	return len(comments)
}
