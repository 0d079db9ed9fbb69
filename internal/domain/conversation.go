package domain

import "time"

// Conversation is a chat thread between the employer behind a job and a
// candidate. Exactly one conversation exists per (job, employer, candidate).
type Conversation struct {
	ID          string
	JobID       string
	EmployerID  string
	CandidateID string
	CreatedAt   time.Time
}

// Message is a single chat message inside a conversation.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Body           string
	ReadAt         *time.Time
	CreatedAt      time.Time
}

// ParticipantIDs returns both account IDs in the conversation.
func (c *Conversation) ParticipantIDs() []string {
	return []string{c.EmployerID, c.CandidateID}
}

// OtherParticipant returns the counterpart of the given account in the
// conversation, or empty string when the account is not a participant.
func (c *Conversation) OtherParticipant(accountID string) string {
	switch accountID {
	case c.EmployerID:
		return c.CandidateID
	case c.CandidateID:
		return c.EmployerID
	}
	return ""
}
