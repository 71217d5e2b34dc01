package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Employee struct {
	ID           uint64    `json:"id"`
	EmployeeCode string    `json:"employee_code"`
	ThaiName     string    `json:"thai_name"`
	EnglishName  string    `json:"english_name"`
	Nickname     string    `json:"nickname"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Position     string    `json:"position"`
	Department   string    `json:"department"`
	StartDate    null.Time `json:"start_date"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
