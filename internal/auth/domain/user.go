package domain

import "time"

type User struct {
	ID           int
	Name         string
	Surname      string
	Username     string
	Email        string
	PasswordHash string
	AuthToken    string
}

type AuditLog struct {
	ID         int
	UserID     int
	Endpoint   string
	Parameters string
	CreatedAt  time.Time
}
