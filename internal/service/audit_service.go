package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/repository"
)

// auditedEvents lists the event types that produce audit log entries.
var auditedEvents = []events.EventType{
	events.EventGuestJoined,
	events.EventMemberRegistered,
	events.EventSessionOpened,
	events.EventSessionRevoked,
	events.EventCommunityCreated,
	events.EventCommunityDeleted,
	events.EventPostCreated,
	events.EventPostDeleted,
	events.EventCommentCreated,
	events.EventCommentDeleted,
	events.EventVoteCast,
}

// AuditService turns published platform events into audit log rows.
type AuditService struct {
	entries    repository.AuditRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService constructs the service.
func NewAuditService(entries repository.AuditRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{entries: entries, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes the audit writer to every audited event type.
func (s *AuditService) RegisterHandlers() {
	for _, eventType := range auditedEvents {
		s.dispatcher.Subscribe(eventType, s.record)
	}
}

// ListRecent pages the audit trail, newest first.
func (s *AuditService) ListRecent(ctx context.Context, limit, offset int) ([]domain.AuditEntry, error) {
	limit, offset = normalizePage(limit, offset)
	return s.entries.ListRecent(ctx, limit, offset)
}

func (s *AuditService) record(ctx context.Context, event events.Event) error {
	entry := &domain.AuditEntry{
		Action:     string(event.Type),
		ActorRole:  event.Actor.Role,
		ActorID:    event.Actor.ID,
		TargetType: event.TargetType,
		TargetID:   event.TargetID,
		Detail:     payloadDetail(event.Payload),
	}
	if err := s.entries.Append(ctx, entry); err != nil {
		s.logger.Error("audit append failed", zap.String("action", entry.Action), zap.Error(err))
		return err
	}
	return nil
}

// payloadDetail flattens an event payload into the generic detail map.
func payloadDetail(payload any) map[string]any {
	if payload == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	var detail map[string]any
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil
	}
	return detail
}
