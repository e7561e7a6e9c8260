package domain

// RemoteSession is a server-side login session, listed and revoked by admins.
// It is never cached locally; the local session lives on the logged-in User.
type RemoteSession struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt string
}
