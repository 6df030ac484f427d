package main

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUserNotFound   = errors.New("user not found")
)

type UserRepo interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

type postgresUserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *postgresUserRepo {
	return &postgresUserRepo{
		db: db,
	}
}

func (repo *postgresUserRepo) CreateUser(ctx context.Context, user User) (User, error) {
	err := repo.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id`,
		user.Name, user.Email, user.Password,
	).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return User{}, ErrDuplicateEmail
		}
		return User{}, err
	}
	return user, nil
}

func (repo *postgresUserRepo) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := repo.db.QueryRowContext(ctx,
		`SELECT id, name, email, password FROM users WHERE email = $1`, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return user, nil
}
