// Package memory предоставляет встроенный набор данных mock-сервера.
package memory

import (
	"context"

	"github.com/theheadmen/jsonmock/internal/models"
	"github.com/theheadmen/jsonmock/internal/storage"
)

// Source реализует storage.Source поверх встроенного набора данных.
type Source struct{}

func NewSource() *Source {
	return &Source{}
}

func (source *Source) Load(_ context.Context) (*storage.Dataset, error) {
	return storage.NewDatasetFromDocument(Fixture())
}

func (source *Source) Ping(_ context.Context) error {
	return nil
}

func (source *Source) Close() error {
	return nil
}

// Fixture возвращает новую копию встроенных данных.
func Fixture() models.Document {
	return models.Document{
		Users: []models.User{
			{
				ID:       1,
				Name:     "João Silva",
				Email:    "joao@email.com",
				Username: "joao123",
				Phone:    "(11) 98765-4321",
				Website:  "joao.com.br",
				Company:  models.Company{Name: "Tech Corp"},
				Address:  models.Address{City: "São Paulo"},
			},
			{
				ID:       2,
				Name:     "Maria Santos",
				Email:    "maria@email.com",
				Username: "maria456",
				Phone:    "(21) 97654-3210",
				Website:  "maria.com.br",
				Company:  models.Company{Name: "Design Studio"},
				Address:  models.Address{City: "Rio de Janeiro"},
			},
			{
				ID:       3,
				Name:     "Pedro Costa",
				Email:    "pedro@email.com",
				Username: "pedro789",
				Phone:    "(31) 96543-2109",
				Website:  "pedro.com.br",
				Company:  models.Company{Name: "Dev Solutions"},
				Address:  models.Address{City: "Belo Horizonte"},
			},
		},
		Posts: []models.Post{
			{UserID: 1, ID: 1, Title: "Primeiro Post", Body: "Conteúdo do primeiro post"},
			{UserID: 1, ID: 2, Title: "Segundo Post", Body: "Conteúdo do segundo post"},
			{UserID: 2, ID: 3, Title: "Post da Maria", Body: "Conteúdo do post da Maria"},
			{UserID: 3, ID: 4, Title: "Post do Pedro", Body: "Conteúdo do post do Pedro"},
		},
		Comments: []models.Comment{
			{PostID: 1, ID: 1, Name: "Ótimo post!", Email: "user1@email.com", Body: "Muito interessante!"},
			{PostID: 1, ID: 2, Name: "Concordo", Email: "user2@email.com", Body: "Excelente conteúdo"},
			{PostID: 2, ID: 3, Name: "Legal", Email: "user3@email.com", Body: "Gostei muito"},
		},
		Todos: []models.Todo{
			{UserID: 1, ID: 1, Title: "Fazer compras", Completed: false},
			{UserID: 1, ID: 2, Title: "Estudar Node.js", Completed: true},
			{UserID: 2, ID: 3, Title: "Fazer exercícios", Completed: false},
			{UserID: 3, ID: 4, Title: "Ler livro", Completed: true},
		},
		Albums: []models.Album{
			{UserID: 1, ID: 1, Title: "Álbum de Viagem"},
			{UserID: 1, ID: 2, Title: "Álbum de Família"},
			{UserID: 2, ID: 3, Title: "Fotos de Eventos"},
		},
	}
}
