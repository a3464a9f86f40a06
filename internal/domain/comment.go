package domain

import "time"

// TicketComment is a thread entry on a ticket. System comments form the
// immutable audit trail (status changes and similar recorded actions).
type TicketComment struct {
	ID        string
	TicketID  string
	AuthorID  *string
	Body      string
	System    bool
	CreatedAt time.Time
}
