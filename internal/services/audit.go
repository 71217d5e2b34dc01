package services

import (
	"context"
	"time"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditSinkInterface records who did what. Append never fails the caller;
// a broken audit write is logged and swallowed so the mutating request
// still succeeds.
type AuditSinkInterface interface {
	Append(ctx context.Context, action, entityType, entityID string, details map[string]interface{})
}

type AuditServiceInterface interface {
	AuditSinkInterface
	GetEntries(ctx context.Context, filter dto.AuditFilterDTO, limit, offset uint64) ([]entities.AuditLogEntry, uint64, error)
}

type AuditService struct {
	auditRepo repositories.AuditRepositoryInterface
	userRepo  repositories.UserRepositoryInterface
	logger    *zap.Logger
}

func NewAuditService(
	auditRepo repositories.AuditRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) AuditServiceInterface {
	return &AuditService{
		auditRepo: auditRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// Append writes one entry synchronously, after the mutation it describes
// has committed.
func (s *AuditService) Append(ctx context.Context, action, entityType, entityID string, details map[string]interface{}) {
	entry := entities.AuditLogEntry{
		ID:         uuid.New().String(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IP:         utils.GetRequestIPFromCtx(ctx),
		UserAgent:  utils.GetUserAgentFromCtx(ctx),
		CreatedAt:  time.Now(),
	}

	if actorID, err := utils.GetUserIDFromCtx(ctx); err == nil {
		entry.ActorUserID = actorID
		if actor, err := s.userRepo.FindUserByID(ctx, actorID); err == nil {
			entry.ActorEmail = actor.Email
		}
	}

	if err := s.auditRepo.AppendEntry(ctx, entry); err != nil {
		s.logger.Warn("failed to append audit entry",
			zap.String("action", action),
			zap.String("entityType", entityType),
			zap.String("entityID", entityID),
			zap.Error(err),
		)
	}
}

func (s *AuditService) GetEntries(ctx context.Context, filter dto.AuditFilterDTO, limit, offset uint64) ([]entities.AuditLogEntry, uint64, error) {
	return s.auditRepo.GetEntries(ctx, filter, limit, offset)
}
