package entities

import "time"

// EmployeeEmailRequest is written once at submission and never mutated.
type EmployeeEmailRequest struct {
	ID            uint64    `json:"id"`
	ThaiName      string    `json:"thai_name"`
	EnglishName   string    `json:"english_name"`
	Phone         string    `json:"phone"`
	Nickname      string    `json:"nickname"`
	Position      string    `json:"position"`
	Department    string    `json:"department"`
	ReplyEmail    string    `json:"reply_email"`
	RequestedByID uint64    `json:"requested_by_id"`
	CreatedAt     time.Time `json:"created_at"`
}
