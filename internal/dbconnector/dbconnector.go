package dbconnector

import (
	"context"
	"database/sql"

	"github.com/theheadmen/jsonmock/internal/logger"
	"github.com/theheadmen/jsonmock/internal/models"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

type DBConnector struct {
	DB *sql.DB
}

func NewDBConnector(ctx context.Context, psqlInfo string) (*DBConnector, error) {
	// for local tests can be used "host=localhost port=5432 user=postgres password=example dbname=godb sslmode=disable"
	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		logger.Log.Debug("Can't open DB", zap.String("error", err.Error()))
		return nil, err
	}

	err = db.PingContext(ctx)
	if err != nil {
		logger.Log.Debug("Can't ping DB", zap.String("error", err.Error()))
		db.Close() // Close the database connection if ping fails.
		return nil, err
	}

	sqlStatement := `
	CREATE TABLE IF NOT EXISTS users (
		id INT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		username VARCHAR(255) NOT NULL,
		phone VARCHAR(255) NOT NULL DEFAULT '',
		website VARCHAR(255) NOT NULL DEFAULT '',
		company_name VARCHAR(255) NOT NULL DEFAULT '',
		address_city VARCHAR(255) NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS posts (
		id INT PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		body TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS comments (
		id INT PRIMARY KEY,
		post_id INT NOT NULL REFERENCES posts(id),
		name TEXT NOT NULL,
		email VARCHAR(255) NOT NULL,
		body TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS todos (
		id INT PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE
	);
	CREATE TABLE IF NOT EXISTS albums (
		id INT PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL
	);`
	_, err = db.ExecContext(ctx, sqlStatement)
	if err != nil {
		logger.Log.Debug("Can't create tables", zap.String("error", err.Error()))
		db.Close() // Close the database connection if table creation fails.
		return nil, err
	}

	return &DBConnector{
		DB: db,
	}, nil
}

// InsertDocument writes every collection inside one transaction.
// Rows whose id already exists are left untouched, so seeding twice is harmless.
func (dbConnector *DBConnector) InsertDocument(ctx context.Context, doc models.Document) error {
	tx, err := dbConnector.DB.BeginTx(ctx, nil)
	if err != nil {
		logger.Log.Info("Failed to initiate transaction for DB", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	for _, user := range doc.Users {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users(id, name, email, username, phone, website, company_name, address_city)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (id) DO NOTHING`,
			user.ID, user.Name, user.Email, user.Username, user.Phone, user.Website, user.Company.Name, user.Address.City)
		if err != nil {
			logger.Log.Info("Failed to insert user", zap.Int("id", user.ID), zap.Error(err))
			return err
		}
	}
	for _, post := range doc.Posts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO posts(id, user_id, title, body) VALUES($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			post.ID, post.UserID, post.Title, post.Body)
		if err != nil {
			logger.Log.Info("Failed to insert post", zap.Int("id", post.ID), zap.Error(err))
			return err
		}
	}
	for _, comment := range doc.Comments {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO comments(id, post_id, name, email, body) VALUES($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
			comment.ID, comment.PostID, comment.Name, comment.Email, comment.Body)
		if err != nil {
			logger.Log.Info("Failed to insert comment", zap.Int("id", comment.ID), zap.Error(err))
			return err
		}
	}
	for _, todo := range doc.Todos {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO todos(id, user_id, title, completed) VALUES($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			todo.ID, todo.UserID, todo.Title, todo.Completed)
		if err != nil {
			logger.Log.Info("Failed to insert todo", zap.Int("id", todo.ID), zap.Error(err))
			return err
		}
	}
	for _, album := range doc.Albums {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO albums(id, user_id, title) VALUES($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			album.ID, album.UserID, album.Title)
		if err != nil {
			logger.Log.Info("Failed to insert album", zap.Int("id", album.ID), zap.Error(err))
			return err
		}
	}

	err = tx.Commit()
	if err != nil {
		logger.Log.Info("Failed to commit transaction DB", zap.Error(err))
		return err
	}

	logger.Log.Info("Inserted new data to database",
		zap.Int("users", len(doc.Users)),
		zap.Int("posts", len(doc.Posts)),
		zap.Int("comments", len(doc.Comments)),
		zap.Int("todos", len(doc.Todos)),
		zap.Int("albums", len(doc.Albums)),
	)
	return nil
}

// SelectDocument reads all five tables ordered by id.
func (dbConnector *DBConnector) SelectDocument(ctx context.Context) (models.Document, error) {
	var doc models.Document
	var err error

	doc.Users, err = selectAll(ctx, dbConnector.DB,
		`SELECT id, name, email, username, phone, website, company_name, address_city FROM users ORDER BY id`,
		func(rows *sql.Rows) (models.User, error) {
			var user models.User
			err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Username, &user.Phone, &user.Website, &user.Company.Name, &user.Address.City)
			return user, err
		})
	if err != nil {
		return doc, err
	}

	doc.Posts, err = selectAll(ctx, dbConnector.DB,
		`SELECT user_id, id, title, body FROM posts ORDER BY id`,
		func(rows *sql.Rows) (models.Post, error) {
			var post models.Post
			err := rows.Scan(&post.UserID, &post.ID, &post.Title, &post.Body)
			return post, err
		})
	if err != nil {
		return doc, err
	}

	doc.Comments, err = selectAll(ctx, dbConnector.DB,
		`SELECT post_id, id, name, email, body FROM comments ORDER BY id`,
		func(rows *sql.Rows) (models.Comment, error) {
			var comment models.Comment
			err := rows.Scan(&comment.PostID, &comment.ID, &comment.Name, &comment.Email, &comment.Body)
			return comment, err
		})
	if err != nil {
		return doc, err
	}

	doc.Todos, err = selectAll(ctx, dbConnector.DB,
		`SELECT user_id, id, title, completed FROM todos ORDER BY id`,
		func(rows *sql.Rows) (models.Todo, error) {
			var todo models.Todo
			err := rows.Scan(&todo.UserID, &todo.ID, &todo.Title, &todo.Completed)
			return todo, err
		})
	if err != nil {
		return doc, err
	}

	doc.Albums, err = selectAll(ctx, dbConnector.DB,
		`SELECT user_id, id, title FROM albums ORDER BY id`,
		func(rows *sql.Rows) (models.Album, error) {
			var album models.Album
			err := rows.Scan(&album.UserID, &album.ID, &album.Title)
			return album, err
		})
	return doc, err
}

func selectAll[T any](ctx context.Context, db *sql.DB, sqlStatement string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	var result []T

	rows, err := db.QueryContext(ctx, sqlStatement)
	if err != nil {
		logger.Log.Info("Failed to read from database", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			logger.Log.Info("Failed to read from database", zap.Error(err))
			return nil, err
		}
		result = append(result, item)
	}

	err = rows.Err()
	if err != nil {
		logger.Log.Info("Failed to read from database", zap.Error(err))
		return nil, err
	}

	return result, nil
}
