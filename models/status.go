package models

// UserRole enumerates the account types on the platform.
type UserRole string

const (
	RoleCompany  UserRole = "company"
	RoleSupplier UserRole = "supplier"
	RoleNGO      UserRole = "ngo"
	RoleAdmin    UserRole = "admin"
)

func ValidUserRole(r UserRole) bool {
	switch r {
	case RoleCompany, RoleSupplier, RoleNGO, RoleAdmin:
		return true
	default:
		return false
	}
}

// ProjectStatus is the lifecycle state of a procurement listing.
type ProjectStatus string

const (
	ProjectDraft      ProjectStatus = "draft"
	ProjectPublished  ProjectStatus = "published"
	ProjectBidding    ProjectStatus = "bidding"
	ProjectAwarded    ProjectStatus = "awarded"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

// projectTransitions is the table of legal forward moves. Cancellation is
// handled separately: any non-terminal status may move to cancelled.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectDraft:      {ProjectPublished},
	ProjectPublished:  {ProjectBidding},
	ProjectBidding:    {ProjectAwarded},
	ProjectAwarded:    {ProjectInProgress},
	ProjectInProgress: {ProjectCompleted},
}

func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectDraft, ProjectPublished, ProjectBidding, ProjectAwarded,
		ProjectInProgress, ProjectCompleted, ProjectCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition is allowed.
func (s ProjectStatus) Terminal() bool {
	return s == ProjectCompleted || s == ProjectCancelled
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	if next == ProjectCancelled {
		return !s.Terminal()
	}
	for _, allowed := range projectTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// BidStatus is the lifecycle state of a supplier's offer.
type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

func ValidBidStatus(s BidStatus) bool {
	switch s {
	case BidPending, BidAccepted, BidRejected:
		return true
	default:
		return false
	}
}

func (s BidStatus) CanTransitionTo(next BidStatus) bool {
	return s == BidPending && (next == BidAccepted || next == BidRejected)
}

// PaymentStatus is the lifecycle state of a transaction. A payment can only
// be refunded after it completed; failed is terminal.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return next == PaymentCompleted || next == PaymentFailed
	case PaymentCompleted:
		return next == PaymentRefunded
	default:
		return false
	}
}

// MessageType classifies a message.
type MessageType string

const (
	MessageText   MessageType = "text"
	MessageFile   MessageType = "file"
	MessageSystem MessageType = "system"
)

func ValidMessageType(t MessageType) bool {
	switch t {
	case MessageText, MessageFile, MessageSystem:
		return true
	default:
		return false
	}
}
