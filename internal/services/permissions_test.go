package services

import (
	"testing"
	"time"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/pkg/constants"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func u64Ptr(v uint64) *uint64 { return &v }

func openTicket(reporterID uint64) *entities.Ticket {
	return &entities.Ticket{
		ID:           1,
		Title:        "Laptop will not boot",
		Description:  "Black screen on power on",
		Category:     constants.CategoryHardware,
		Priority:     constants.PriorityMedium,
		Status:       constants.StatusOpen,
		ReportedByID: reporterID,
	}
}

func TestCheckTicketPermissions(t *testing.T) {
	ticket := openTicket(10)

	cases := []struct {
		name    string
		actorID uint64
		role    string
		want    PermissionCheck
	}{
		{"owner", 10, constants.RoleUser, PermissionCheck{IsOwner: true, IsAdmin: false, HasAccess: true}},
		{"admin", 99, constants.RoleAdmin, PermissionCheck{IsOwner: false, IsAdmin: true, HasAccess: true}},
		{"owner who is admin", 10, constants.RoleAdmin, PermissionCheck{IsOwner: true, IsAdmin: true, HasAccess: true}},
		{"stranger", 99, constants.RoleUser, PermissionCheck{IsOwner: false, IsAdmin: false, HasAccess: false}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CheckTicketPermissions(ticket, tc.actorID, tc.role))
		})
	}
}

func TestApplyTicketPatchOwnerFields(t *testing.T) {
	ticket := openTicket(10)
	perm := CheckTicketPermissions(ticket, 10, constants.RoleUser)

	changed := ApplyTicketPatch(ticket, dto.UpdateTicketDTO{
		Title:    strPtr("Laptop dead"),
		Category: strPtr(constants.CategorySoftware),
	}, perm, time.Now())

	assert.ElementsMatch(t, []string{"title", "category"}, changed)
	assert.Equal(t, "Laptop dead", ticket.Title)
	assert.Equal(t, constants.CategorySoftware, ticket.Category)
}

func TestApplyTicketPatchOwnerBlockedAfterOpen(t *testing.T) {
	ticket := openTicket(10)
	ticket.Status = constants.StatusInProgress
	perm := CheckTicketPermissions(ticket, 10, constants.RoleUser)

	changed := ApplyTicketPatch(ticket, dto.UpdateTicketDTO{Title: strPtr("new title")}, perm, time.Now())

	assert.Empty(t, changed)
	assert.Equal(t, "Laptop will not boot", ticket.Title)
}

func TestApplyTicketPatchOwnerCannotChangeStatus(t *testing.T) {
	ticket := openTicket(10)
	perm := CheckTicketPermissions(ticket, 10, constants.RoleUser)

	changed := ApplyTicketPatch(ticket, dto.UpdateTicketDTO{
		Status:   strPtr(constants.StatusResolved),
		Priority: strPtr(constants.PriorityUrgent),
	}, perm, time.Now())

	// Disallowed fields drop silently, no error and no change.
	assert.Empty(t, changed)
	assert.Equal(t, constants.StatusOpen, ticket.Status)
	assert.Equal(t, constants.PriorityMedium, ticket.Priority)
	assert.False(t, ticket.ResolvedAt.Valid)
}

func TestApplyTicketPatchAdminFields(t *testing.T) {
	ticket := openTicket(10)
	perm := CheckTicketPermissions(ticket, 99, constants.RoleAdmin)

	changed := ApplyTicketPatch(ticket, dto.UpdateTicketDTO{
		Status:       strPtr(constants.StatusInProgress),
		Priority:     strPtr(constants.PriorityHigh),
		AssignedToID: u64Ptr(7),
	}, perm, time.Now())

	assert.ElementsMatch(t, []string{"status", "priority", "assigned_to_id"}, changed)
	assert.Equal(t, constants.StatusInProgress, ticket.Status)
	assert.Equal(t, constants.PriorityHigh, ticket.Priority)
	assert.Equal(t, null.Uint64From(7), ticket.AssignedToID)
}

func TestApplyTicketPatchAdminCannotEditContent(t *testing.T) {
	ticket := openTicket(10)
	perm := CheckTicketPermissions(ticket, 99, constants.RoleAdmin)

	changed := ApplyTicketPatch(ticket, dto.UpdateTicketDTO{Title: strPtr("renamed")}, perm, time.Now())

	assert.Empty(t, changed)
	assert.Equal(t, "Laptop will not boot", ticket.Title)
}

func TestApplyTicketPatchResolveStampsTimestamp(t *testing.T) {
	ticket := openTicket(10)
	perm := CheckTicketPermissions(ticket, 99, constants.RoleAdmin)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	ApplyTicketPatch(ticket, dto.UpdateTicketDTO{Status: strPtr(constants.StatusResolved)}, perm, now)

	assert.Equal(t, constants.StatusResolved, ticket.Status)
	assert.True(t, ticket.ResolvedAt.Valid)
	assert.Equal(t, now, ticket.ResolvedAt.Time)
}

func TestApplyTicketPatchReResolveRefreshesTimestamp(t *testing.T) {
	ticket := openTicket(10)
	ticket.Status = constants.StatusResolved
	firstResolve := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	ticket.ResolvedAt = null.TimeFrom(firstResolve)
	perm := CheckTicketPermissions(ticket, 99, constants.RoleAdmin)
	now := time.Date(2026, 8, 2, 14, 0, 0, 0, time.UTC)

	changed := ApplyTicketPatch(ticket, dto.UpdateTicketDTO{Status: strPtr(constants.StatusResolved)}, perm, now)

	// No status transition, but the refreshed timestamp must be reported
	// as a change so it gets persisted.
	assert.Equal(t, []string{"resolved_at"}, changed)
	assert.Equal(t, now, ticket.ResolvedAt.Time)
}

func TestApplyTicketPatchLeavingResolvedClearsTimestamp(t *testing.T) {
	ticket := openTicket(10)
	ticket.Status = constants.StatusResolved
	ticket.ResolvedAt = null.TimeFrom(time.Now())
	perm := CheckTicketPermissions(ticket, 99, constants.RoleAdmin)

	ApplyTicketPatch(ticket, dto.UpdateTicketDTO{Status: strPtr(constants.StatusInProgress)}, perm, time.Now())

	assert.Equal(t, constants.StatusInProgress, ticket.Status)
	assert.False(t, ticket.ResolvedAt.Valid)
}

func TestApplyTicketPatchOwnerAdminCombined(t *testing.T) {
	// An admin who also owns the ticket can touch both field groups while
	// it is still OPEN.
	ticket := openTicket(10)
	perm := CheckTicketPermissions(ticket, 10, constants.RoleAdmin)

	changed := ApplyTicketPatch(ticket, dto.UpdateTicketDTO{
		Title:  strPtr("fixed title"),
		Status: strPtr(constants.StatusInProgress),
	}, perm, time.Now())

	assert.ElementsMatch(t, []string{"title", "status"}, changed)
	assert.Equal(t, "fixed title", ticket.Title)
	assert.Equal(t, constants.StatusInProgress, ticket.Status)
}
