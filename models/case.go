package models

// Case abstracts over complaints and assistance requests so the notification
// and activity helpers can handle either without duplicating every function.
type Case interface {
	CaseID() uint
	CaseTitle() string
	// CaseLabel is the human-facing noun used in notification copy,
	// "complaint" or "assistance request".
	CaseLabel() string
	// CasePriority is the complaint priority or the assistance urgency.
	CasePriority() string
	OwnerID() uint
	AssignedStaffID() *uint
	// Attach points n at this case via the matching related-case column.
	Attach(n *Notification)
}
