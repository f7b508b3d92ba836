package domain

// TicketStatus is the lifecycle state of a password-reset ticket.
type TicketStatus string

const (
	// TicketIssued means the OTP was generated and mailed but not yet proven.
	TicketIssued TicketStatus = "issued"
	// TicketVerified means the caller submitted the correct OTP; the ticket
	// now authorizes exactly one password reset.
	TicketVerified TicketStatus = "verified"
)

// ResetTicket is the transient record behind the forgot-password flow,
// keyed by email in the ticket store. It is deleted (consumed) by a
// successful password reset or by its TTL.
type ResetTicket struct {
	Email  string       `json:"email"`
	Code   string       `json:"code"`
	Status TicketStatus `json:"status"`
}
