package domain

// AuthPayload is the body returned by the login, register and refresh endpoints,
// and synthesized by the offline simulation. Success=false with a Message is a
// rejected attempt, not a transport failure.
type AuthPayload struct {
	Success bool
	Message string
	User    *User
	Token   string
}

// Authenticated reports whether the payload carries a usable session.
func (p AuthPayload) Authenticated() bool {
	return p.Success && p.User != nil && p.Token != ""
}
