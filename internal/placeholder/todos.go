package placeholder

import (
	"context"

	"github.com/theheadmen/jsonmock/internal/models"
	"github.com/theheadmen/jsonmock/internal/validation"
)

func (c *Client) AllTodos(ctx context.Context) ([]models.Todo, error) {
	return fetchList[models.Todo](ctx, c, "/todos", nil, "todo", validation.ValidateTodo)
}

func (c *Client) TodoByID(ctx context.Context, id int) (models.Todo, error) {
	if err := checkID("todo id", id); err != nil {
		return models.Todo{}, err
	}
	return fetchOne[models.Todo](ctx, c, idPath("todos", id), "todo", validation.ValidateTodo)
}

// MarkAsCompleted returns a completed copy; the argument is not modified.
func MarkAsCompleted(todo models.Todo) models.Todo {
	todo.Completed = true
	return todo
}

// MarkAsPending returns a pending copy; the argument is not modified.
func MarkAsPending(todo models.Todo) models.Todo {
	todo.Completed = false
	return todo
}

func FilterCompletedTodos(todos []models.Todo) []models.Todo {
	return filterTodos(todos, true)
}

func FilterPendingTodos(todos []models.Todo) []models.Todo {
	return filterTodos(todos, false)
}

// CompletionRate is the percentage of completed todos, 0 for an empty list.
func CompletionRate(todos []models.Todo) float64 {
	if len(todos) == 0 {
		return 0
	}
	return float64(len(FilterCompletedTodos(todos))) / float64(len(todos)) * 100
}

func filterTodos(todos []models.Todo, completed bool) []models.Todo {
	result := make([]models.Todo, 0)
	for _, todo := range todos {
		if todo.Completed == completed {
			result = append(result, todo)
		}
	}
	return result
}
