package userservice

import (
	"database/sql"
	"time"
)

type UserService struct {
	m *DBModel
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Password keeps the plaintext out of every serialization path; only the
// bcrypt hash is ever persisted.
type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}
