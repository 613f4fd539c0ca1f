package placeholder

import (
	"context"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/theheadmen/jsonmock/internal/models"
	"github.com/theheadmen/jsonmock/internal/validation"
)

func (c *Client) AllUsers(ctx context.Context) ([]models.User, error) {
	return fetchList[models.User](ctx, c, "/users", nil, "user", validation.ValidateUser)
}

func (c *Client) UserByID(ctx context.Context, id int) (models.User, error) {
	if err := checkID("user id", id); err != nil {
		return models.User{}, err
	}
	return fetchOne[models.User](ctx, c, idPath("users", id), "user", validation.ValidateUser)
}

// FilterUsersByCity keeps users whose address city equals city exactly.
func FilterUsersByCity(users []models.User, city string) []models.User {
	result := make([]models.User, 0)
	for _, user := range users {
		if user.Address.City == city {
			result = append(result, user)
		}
	}
	return result
}

// FormatUserName upper-cases a name with full Unicode case mapping ("João" -> "JOÃO").
func FormatUserName(name string) string {
	// a Caser keeps state between calls, so it is not shared
	return cases.Upper(language.Und).String(name)
}

func CountUsers(users []models.User) int {
	return len(users)
}
