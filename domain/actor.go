package domain

// Actor is the authenticated identity behind a workflow call. It is passed
// explicitly into every service operation instead of being read from
// ambient request state, which keeps the business layer testable without
// the HTTP framework.
type Actor struct {
	ID   uint
	Role Role
}
