package domain

// Action is a permission-checked operation on an owned record.
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// ListScope describes which owners' records an actor may see on list
// endpoints. List queries narrow silently to the scope instead of failing.
type ListScope int

const (
	// ScopeOwn limits listing to the actor's own records.
	ScopeOwn ListScope = iota
	// ScopeTeam covers the actor's direct reports plus the actor.
	ScopeTeam
	// ScopeAll is unrestricted.
	ScopeAll
)

// decision decides a single (actor, owner) pair. ownerManagerID is the
// manager reference of the record's owner; single-record rules currently
// ignore it because any manager may view any record, while mutation is
// owner-or-admin only.
type decision func(actor Actor, ownerID, ownerManagerID string) bool

// rules is the single authoritative permission table. Note the asymmetry:
// managers can view everything but cannot mutate anything they do not own,
// including their own reports' records.
var rules = map[Action]decision{
	ActionView: func(actor Actor, ownerID, _ string) bool {
		return actor.Role == RoleAdmin || actor.Role == RoleManager || actor.ID == ownerID
	},
	ActionEdit: func(actor Actor, ownerID, _ string) bool {
		return actor.Role == RoleAdmin || actor.ID == ownerID
	},
	ActionDelete: func(actor Actor, ownerID, _ string) bool {
		return actor.Role == RoleAdmin || actor.ID == ownerID
	},
}

// Allowed reports whether actor may perform action on a record whose owner
// is ownerID and whose owner reports to ownerManagerID. Unknown actions
// are denied.
func Allowed(action Action, actor Actor, ownerID, ownerManagerID string) bool {
	rule, ok := rules[action]
	if !ok {
		return false
	}
	return rule(actor, ownerID, ownerManagerID)
}

// ScopeFor returns the list visibility granted to a role.
func ScopeFor(role string) ListScope {
	switch role {
	case RoleAdmin:
		return ScopeAll
	case RoleManager:
		return ScopeTeam
	default:
		return ScopeOwn
	}
}
