package dto

type CreateEmployeeDTO struct {
	EmployeeCode string `json:"employee_code" validate:"required,max=20"`
	ThaiName     string `json:"thai_name" validate:"required,max=200"`
	EnglishName  string `json:"english_name" validate:"required,max=200"`
	Nickname     string `json:"nickname" validate:"max=50"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"max=30"`
	Position     string `json:"position" validate:"max=100"`
	Department   string `json:"department" validate:"max=100"`
	StartDate    string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateEmployeeDTO struct {
	ThaiName    *string `json:"thai_name" validate:"omitempty,max=200"`
	EnglishName *string `json:"english_name" validate:"omitempty,max=200"`
	Nickname    *string `json:"nickname" validate:"omitempty,max=50"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=30"`
	Position    *string `json:"position" validate:"omitempty,max=100"`
	Department  *string `json:"department" validate:"omitempty,max=100"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	Active      *bool   `json:"active"`
}

type EmployeeFilterDTO struct {
	Department string `query:"department"`
	Active     string `query:"active"`
	Search     string `query:"search"`
}

// ImportRowError describes one rejected CSV row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResultDTO aggregates a CSV import run. Valid rows are committed
// even when other rows fail.
type ImportResultDTO struct {
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Errors   []ImportRowError `json:"errors"`
}
