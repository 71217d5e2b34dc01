package dto

type AuditFilterDTO struct {
	EntityType string `query:"entity_type"`
	Action     string `query:"action"`
}
