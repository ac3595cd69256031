package project

import "time"

// ProjectRef is a read-only view of a project record. The project collection
// is owned by the wider ERP; the invitation core never writes to it and never
// relies on it being consistent with stored invitations.
type ProjectRef struct {
	ID              string
	ReferenceNumber string
	Name            string
	Client          string
	Owner           string
	StartDate       *time.Time
	EndDate         *time.Time
}

// Snapshot holds the project fields copied into an invitation at issuance
// time, so a later rename or deletion of the project cannot break the
// invitation view.
type Snapshot struct {
	Name   string
	Client string
}

// Resolution is the result of joining an invitation to the project
// collection. When Found is false the join missed on both keys and Snapshot
// carries the issuance-time copy instead.
type Resolution struct {
	Found    bool
	Project  ProjectRef
	Snapshot Snapshot
}
