package constants

// Ticket categories.
const (
	CategoryHardware = "HARDWARE"
	CategorySoftware = "SOFTWARE"
	CategoryNetwork  = "NETWORK"
	CategoryAccount  = "ACCOUNT"
	CategoryEmail    = "EMAIL"
	CategoryPrinter  = "PRINTER"
	CategoryOther    = "OTHER"
)

// Ticket priorities.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Ticket statuses.
const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"
	StatusClosed     = "CLOSED"
	StatusCancelled  = "CANCELLED"
)

// User roles.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// IsEscalationPriority reports whether a new ticket with this priority
// must additionally alert the IT team.
func IsEscalationPriority(priority string) bool {
	return priority == PriorityHigh || priority == PriorityUrgent
}
