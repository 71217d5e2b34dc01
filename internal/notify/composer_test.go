package notify

import (
	"strings"
	"testing"
	"time"

	"helpdesk-system/pkg/constants"

	"github.com/stretchr/testify/assert"
)

func sampleSnapshot() TicketSnapshot {
	return TicketSnapshot{
		ID:            42,
		Title:         "Printer on 3F jams",
		Description:   "Paper jam every second page",
		Category:      constants.CategoryPrinter,
		Priority:      constants.PriorityUrgent,
		Status:        constants.StatusOpen,
		ReporterName:  "Somchai",
		ReporterEmail: "somchai@example.com",
		CreatedAt:     time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
	}
}

const baseURL = "https://helpdesk.example.com"

func TestComposeNewTicketEmailIsDeterministic(t *testing.T) {
	a := ComposeNewTicketEmail(sampleSnapshot(), baseURL)
	b := ComposeNewTicketEmail(sampleSnapshot(), baseURL)

	// Same snapshot in, byte-identical message out.
	assert.Equal(t, a, b)
	assert.Equal(t, "[Helpdesk] Ticket #42 created: Printer on 3F jams", a.Subject)
	assert.Contains(t, a.HTML, "https://helpdesk.example.com/tickets/42")
	assert.Contains(t, a.Text, "Priority: Urgent")
}

func TestComposeStatusChangeEmail(t *testing.T) {
	s := sampleSnapshot()
	s.Status = constants.StatusResolved

	msg := ComposeStatusChangeEmail(s, constants.StatusInProgress, baseURL)

	assert.Equal(t, "[Helpdesk] Ticket #42 is now Resolved", msg.Subject)
	assert.Contains(t, msg.Text, "Previous status: In Progress")
	assert.Contains(t, msg.Text, "New status: Resolved")
}

func TestComposeEscalationEmailNamesPriority(t *testing.T) {
	msg := ComposeEscalationEmail(sampleSnapshot(), baseURL)

	assert.True(t, strings.HasPrefix(msg.Subject, "[Helpdesk][Urgent]"))
	assert.Contains(t, msg.Text, "Reported by: Somchai")
}

func TestComposeEmailEscapesHTML(t *testing.T) {
	s := sampleSnapshot()
	s.Title = `<script>alert("x")</script>`

	msg := ComposeNewTicketEmail(s, baseURL)

	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
}

func TestComposeTicketChatCardKinds(t *testing.T) {
	s := sampleSnapshot()

	escalation := ComposeTicketChatCard(s, EventITTeamEscalation, "", baseURL)
	assert.Contains(t, escalation.Title, "Urgent ticket #42")
	assert.Equal(t, "#c62828", escalation.AccentColor)

	s.Status = constants.StatusInProgress
	update := ComposeTicketChatCard(s, EventStatusUpdate, constants.StatusOpen, baseURL)
	assert.Equal(t, "Ticket #42 updated", update.Title)
	var statusLine string
	for _, line := range update.Lines {
		if line.Label == "Status" {
			statusLine = line.Value
		}
	}
	assert.Equal(t, "Open → In Progress", statusLine)

	created := ComposeTicketChatCard(s, EventNewTicket, "", baseURL)
	assert.Equal(t, "New ticket #42", created.Title)
	assert.Equal(t, "https://helpdesk.example.com/tickets/42", created.ButtonURL)
}

func TestUnknownEnumValuesFallBackToRaw(t *testing.T) {
	s := sampleSnapshot()
	s.Priority = "SOMEDAY"
	s.Category = "MYSTERY"

	card := ComposeTicketChatCard(s, EventNewTicket, "", baseURL)

	var priority, category string
	for _, line := range card.Lines {
		switch line.Label {
		case "Priority":
			priority = line.Value
		case "Category":
			category = line.Value
		}
	}
	assert.Equal(t, "SOMEDAY", priority)
	assert.Equal(t, "MYSTERY", category)
	assert.Equal(t, "#546e7a", card.AccentColor)
}

func TestComposeEmailRequestChatCard(t *testing.T) {
	card := ComposeEmailRequestChatCard(EmailRequestSnapshot{
		ThaiName:    "สมหญิง ใจดี",
		EnglishName: "Somying Jaidee",
		Nickname:    "Ying",
		Phone:       "081-234-5678",
		Position:    "Accountant",
		Department:  "Finance",
		ReplyEmail:  "hr@example.com",
	})

	assert.Equal(t, "📧 New email account request", card.Title)
	var name string
	for _, line := range card.Lines {
		if line.Label == "Name" {
			name = line.Value
		}
	}
	assert.Equal(t, "Somying Jaidee (Ying)", name)
	assert.Empty(t, card.ButtonURL)
}
