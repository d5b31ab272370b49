package models

type FormStatus string

const (
	FormStatusPending  FormStatus = "Pending"
	FormStatusApproved FormStatus = "Approved"
	FormStatusRejected FormStatus = "Rejected"
	FormStatusModified FormStatus = "Modified"
)

var knownStatuses = map[FormStatus]bool{
	FormStatusPending:  true,
	FormStatusApproved: true,
	FormStatusRejected: true,
	FormStatusModified: true,
}

func (s FormStatus) IsValid() bool {
	return knownStatuses[s]
}

// IsTransitionTarget reports whether a status update may set this value.
// Pending is the initial state only, it is never a transition target.
func (s FormStatus) IsTransitionTarget() bool {
	return s == FormStatusApproved || s == FormStatusRejected || s == FormStatusModified
}
