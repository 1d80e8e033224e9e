package user

import "context"

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleProcessor Role = "PROCESSOR"
	RoleViewer    Role = "VIEWER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProcessor, RoleViewer:
		return true
	}
	return false
}

// Actor is the authenticated caller. It is never persisted; only its ID is
// copied onto the records it touches.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// CanProcess reports whether the actor may create, edit, move or receipt
// applications.
func (a Actor) CanProcess() bool {
	return a.Role == RoleAdmin || a.Role == RoleProcessor
}

// CanDecide reports whether the actor may approve or disapprove.
func (a Actor) CanDecide() bool { return a.Role == RoleAdmin }

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the actor stored by WithActor.
func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}
