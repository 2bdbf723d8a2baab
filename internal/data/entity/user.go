package entity

type User struct {
	Base
	Username     string  `db:"username"`
	Email        string  `db:"email"`
	PasswordHash string  `db:"password"`
	Mobile       *string `db:"mobile"`
	IsActive     bool    `db:"is_active"`
}
