package chat

// TypeID classifies a chat and selects its reconciliation policy.
type TypeID int

const (
	TypeExternal TypeID = 1 // external group: enforce against inactive members
	TypeInternal TypeID = 2 // internal group: also enforce against externals
	TypeObserve  TypeID = 3 // observe-only: counting, no enforcement
	TypeNew      TypeID = 4 // just discovered, pending classification
	TypeRemoved  TypeID = 5 // bot lost access; revivable
	TypeBlocked  TypeID = 6 // never processed
)

func (t TypeID) Valid() bool {
	return t >= TypeExternal && t <= TypeBlocked
}

func (t TypeID) String() string {
	switch t {
	case TypeExternal:
		return "external"
	case TypeInternal:
		return "internal"
	case TypeObserve:
		return "observe"
	case TypeNew:
		return "new"
	case TypeRemoved:
		return "removed"
	case TypeBlocked:
		return "blocked"
	}
	return "unknown"
}

// StatusID records the bot's standing in the chat.
type StatusID int

const (
	StatusOK          StatusID = 1
	StatusBotNotAdmin StatusID = 2
	StatusAccessLost  StatusID = 3
)

func (s StatusID) Valid() bool {
	return s >= StatusOK && s <= StatusAccessLost
}

func (s StatusID) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBotNotAdmin:
		return "bot_not_admin"
	case StatusAccessLost:
		return "access_lost"
	}
	return "unknown"
}

// Policy describes what one reconciliation pass does for a chat type.
type Policy struct {
	// KickInactive removes members whose link or employee record is inactive.
	KickInactive bool
	// KickExternal additionally removes members flagged is_external.
	KickExternal bool
	// Count maintains user_num and unknown_user.
	Count bool
	// Skip means the chat is not processed at all this cycle.
	Skip bool
}

// Enforces reports whether the policy removes members via the remote API.
// Non-enforcing types only deactivate local links.
func (p Policy) Enforces() bool {
	return p.KickInactive || p.KickExternal
}

// PolicyFor maps a chat type to its reconciliation policy.
func PolicyFor(t TypeID) Policy {
	switch t {
	case TypeExternal:
		return Policy{KickInactive: true, Count: true}
	case TypeInternal:
		return Policy{KickInactive: true, KickExternal: true, Count: true}
	case TypeObserve, TypeNew:
		return Policy{Count: true}
	default:
		return Policy{Skip: true}
	}
}
