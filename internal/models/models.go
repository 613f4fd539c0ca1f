// Package models описывает сущности, которые отдаёт mock-сервер и возвращает внешний API.
package models

type Company struct {
	Name string `json:"name"`
}

type Address struct {
	City string `json:"city"`
}

type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Company  Company `json:"company"`
	Address  Address `json:"address"`
}

type Post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type Comment struct {
	PostID int    `json:"postId"`
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

type Todo struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Album struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
}

// ErrorResponse тело ответа для 404 и 500.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse тело ответа /ping.
type StatusResponse struct {
	Status string `json:"status"`
}

// Document формат db.json в стиле json-server: все коллекции в одном объекте.
type Document struct {
	Users    []User    `json:"users"`
	Posts    []Post    `json:"posts"`
	Comments []Comment `json:"comments"`
	Todos    []Todo    `json:"todos"`
	Albums   []Album   `json:"albums"`
}
