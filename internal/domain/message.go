package domain

// ContactMessage is a validated inbound contact-form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// StoredMessage is the row persisted for a submission. Rows are written
// once and never read back; the table's TTL attribute expires them.
type StoredMessage struct {
	ID        string
	Email     string
	Name      string
	Message   string
	ExpiresAt int64
}
