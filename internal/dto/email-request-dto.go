package dto

type CreateEmailRequestDTO struct {
	ThaiName    string `json:"thai_name" validate:"required,max=200"`
	EnglishName string `json:"english_name" validate:"required,max=200"`
	Phone       string `json:"phone" validate:"required,max=30"`
	Nickname    string `json:"nickname" validate:"max=50"`
	Position    string `json:"position" validate:"required,max=100"`
	Department  string `json:"department" validate:"required,max=100"`
	ReplyEmail  string `json:"reply_email" validate:"required,email"`
}
