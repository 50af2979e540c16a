package respond

import "time"

// RegisterRespond is the created user. It never carries the password hash.
type RegisterRespond struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginRespond carries the access token.
type LoginRespond struct {
	Token string `json:"token"`
}
