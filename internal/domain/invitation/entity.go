package invitation

import "time"

// Status represents the lifecycle status of an invitation
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
)

// transitions is the full status state machine. Expiry is not a status: it is
// recomputed from the token on every validation and never stored.
var transitions = map[Status]Status{
	StatusPending:  StatusAccepted,
	StatusAccepted: StatusCompleted,
}

// CanTransition reports whether from -> to is an allowed status move.
// Transitions are monotonic; there are no back-transitions and completed
// cannot be reached without passing through accepted.
func CanTransition(from, to Status) bool {
	return transitions[from] == to
}

// Invitation grants one engineer the capability to view and respond to one
// project's tender. The token is the primary key; its issuance time is
// embedded in the token itself, not stored alongside it. Records are
// append-only: statuses move forward but invitations are never deleted.
type Invitation struct {
	Token                  string
	ProjectID              string
	ProjectReferenceNumber string
	ProjectName            string // snapshot at issuance
	ProjectClient          string // snapshot at issuance
	EngineerID             string
	EngineerEmail          string
	Status                 Status
	AcceptedAt             *time.Time
	AcceptedBy             string
	CreatedAt              time.Time
}
