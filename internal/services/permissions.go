package services

import (
	"time"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/pkg/constants"

	"github.com/aarondl/null/v8"
)

// PermissionCheck is the actor's relationship to one ticket.
type PermissionCheck struct {
	IsOwner   bool
	IsAdmin   bool
	HasAccess bool
}

// CheckTicketPermissions is pure: no I/O, no failure modes.
func CheckTicketPermissions(ticket *entities.Ticket, actorID uint64, actorRole string) PermissionCheck {
	isOwner := ticket.ReportedByID == actorID
	isAdmin := actorRole == constants.RoleAdmin
	return PermissionCheck{
		IsOwner:   isOwner,
		IsAdmin:   isAdmin,
		HasAccess: isOwner || isAdmin,
	}
}

// ApplyTicketPatch mutates the ticket in place, applying only the fields
// the actor is allowed to change and silently ignoring the rest:
//   - admins may change status, assignee and priority at any time;
//   - the owner may change title, description and category, but only
//     while the ticket is still OPEN.
//
// Setting status to RESOLVED stamps resolvedAt; moving away from
// RESOLVED clears it. Returns the names of the fields that changed.
func ApplyTicketPatch(ticket *entities.Ticket, patch dto.UpdateTicketDTO, perm PermissionCheck, now time.Time) []string {
	var changed []string

	// Owner edits are gated on the status before any admin change below.
	ownerMayEdit := perm.IsOwner && ticket.Status == constants.StatusOpen

	if ownerMayEdit {
		if patch.Title != nil && *patch.Title != ticket.Title {
			ticket.Title = *patch.Title
			changed = append(changed, "title")
		}
		if patch.Description != nil && *patch.Description != ticket.Description {
			ticket.Description = *patch.Description
			changed = append(changed, "description")
		}
		if patch.Category != nil && *patch.Category != ticket.Category {
			ticket.Category = *patch.Category
			changed = append(changed, "category")
		}
	}

	if perm.IsAdmin {
		if patch.Priority != nil && *patch.Priority != ticket.Priority {
			ticket.Priority = *patch.Priority
			changed = append(changed, "priority")
		}
		if patch.AssignedToID != nil {
			if !ticket.AssignedToID.Valid || ticket.AssignedToID.Uint64 != *patch.AssignedToID {
				ticket.AssignedToID = null.Uint64From(*patch.AssignedToID)
				changed = append(changed, "assigned_to_id")
			}
		}
		if patch.Status != nil {
			newStatus := *patch.Status
			if newStatus != ticket.Status {
				changed = append(changed, "status")
			}
			ticket.Status = newStatus
			prevResolvedAt := ticket.ResolvedAt
			if newStatus == constants.StatusResolved {
				ticket.ResolvedAt = null.TimeFrom(now)
			} else if ticket.ResolvedAt.Valid {
				ticket.ResolvedAt = null.Time{}
			}
			// A re-resolve refreshes the timestamp without a status
			// transition; the new value still has to reach the store.
			if resolvedAtChanged(prevResolvedAt, ticket.ResolvedAt) {
				changed = append(changed, "resolved_at")
			}
		}
	}

	return changed
}

func resolvedAtChanged(before, after null.Time) bool {
	if before.Valid != after.Valid {
		return true
	}
	return before.Valid && !before.Time.Equal(after.Time)
}
