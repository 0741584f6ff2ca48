package model

type SessionState int

const (
	StateAnonymous SessionState = iota
	StateUnverified
	StateVerified
)

func (s SessionState) String() string {
	switch s {
	case StateUnverified:
		return "unverified"
	case StateVerified:
		return "verified"
	default:
		return "anonymous"
	}
}

// Identity is the session view of the caller for one request.
type Identity struct {
	User  *User
	State SessionState
}

func NewIdentity(user *User) *Identity {
	switch {
	case user == nil:
		return &Identity{State: StateAnonymous}
	case user.Activate:
		return &Identity{User: user, State: StateVerified}
	default:
		return &Identity{User: user, State: StateUnverified}
	}
}

func (i *Identity) Authenticated() bool {
	return i != nil && i.User != nil
}

func (i *Identity) Verified() bool {
	return i != nil && i.State == StateVerified
}

func (i *Identity) UserID() string {
	if i == nil || i.User == nil {
		return ""
	}
	return i.User.ID
}
