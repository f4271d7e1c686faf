package domain

import (
	"io"
	"time"
)

// DownloadToken binds a filename to a short download window.
// Salt is both the identity and the value of the token.
type DownloadToken struct {
	Salt      int64     `json:"salt"`
	Filename  string    `json:"filename"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token is no longer valid at now
func (t DownloadToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// DownloadGrant is what a client needs to redeem a download
type DownloadGrant struct {
	Filename string
	Salt     int64
}

// Delivery is an open blob stream ready to be sent to a client
type Delivery struct {
	Filename string
	Size     int64
	Content  io.ReadCloser
}

// AuthStatus is the answer to a successful credentials check
type AuthStatus struct {
	Message string
	Status  int
}
