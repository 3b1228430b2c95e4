package models

import "time"

// Session is the persisted admin session. There is no expiry and no user
// concept beyond the single configured credential pair; this gates the
// back-office routes and is not a security boundary.
type Session struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
