package session

import "time"

const tokenType = "session"

// Config wires runtime settings for anonymous sessions.
type Config struct {
	Secret   string
	TokenTTL time.Duration
	Issuer   string
}

// Token is returned when a client opens a session.
type Token struct {
	Token     string    `json:"token"`
	ClientID  string    `json:"clientId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Claims are the validated contents of a session token.
type Claims struct {
	ClientID  string
	ExpiresAt time.Time
}
