package notify

import (
	"fmt"
	"html"
	"strings"

	"helpdesk-system/pkg/linechat"
)

// EmailMessage is a fully rendered message ready for the SMTP channel.
type EmailMessage struct {
	Subject string
	HTML    string
	Text    string
}

const timeLayout = "2006-01-02 15:04"

func ticketURL(baseURL string, id uint64) string {
	return fmt.Sprintf("%s/tickets/%d", strings.TrimRight(baseURL, "/"), id)
}

// ComposeNewTicketEmail renders the confirmation sent to the reporter.
// Output depends only on the snapshot and baseURL.
func ComposeNewTicketEmail(s TicketSnapshot, baseURL string) EmailMessage {
	subject := fmt.Sprintf("[Helpdesk] Ticket #%d created: %s", s.ID, s.Title)

	var htmlBody strings.Builder
	htmlBody.WriteString(`<div style="font-family:sans-serif">`)
	htmlBody.WriteString(fmt.Sprintf("<h2>Ticket #%d has been created</h2>", s.ID))
	htmlBody.WriteString(fmt.Sprintf("<p>Hi %s, your request was received and the IT team will pick it up shortly.</p>", html.EscapeString(s.ReporterName)))
	htmlBody.WriteString("<table cellpadding=\"4\">")
	writeHTMLRow(&htmlBody, "Title", s.Title)
	writeHTMLRow(&htmlBody, "Category", labelFor(categoryLabels, s.Category))
	writeHTMLRow(&htmlBody, "Priority", labelFor(priorityLabels, s.Priority))
	writeHTMLRow(&htmlBody, "Status", labelFor(statusLabels, s.Status))
	writeHTMLRow(&htmlBody, "Created", s.CreatedAt.Format(timeLayout))
	htmlBody.WriteString("</table>")
	htmlBody.WriteString(fmt.Sprintf(`<p><a href="%s">View ticket</a></p>`, ticketURL(baseURL, s.ID)))
	htmlBody.WriteString("</div>")

	var text strings.Builder
	fmt.Fprintf(&text, "Ticket #%d has been created\n\n", s.ID)
	fmt.Fprintf(&text, "Title: %s\n", s.Title)
	fmt.Fprintf(&text, "Category: %s\n", labelFor(categoryLabels, s.Category))
	fmt.Fprintf(&text, "Priority: %s\n", labelFor(priorityLabels, s.Priority))
	fmt.Fprintf(&text, "Status: %s\n", labelFor(statusLabels, s.Status))
	fmt.Fprintf(&text, "Created: %s\n\n", s.CreatedAt.Format(timeLayout))
	fmt.Fprintf(&text, "View: %s\n", ticketURL(baseURL, s.ID))

	return EmailMessage{Subject: subject, HTML: htmlBody.String(), Text: text.String()}
}

// ComposeStatusChangeEmail renders the update sent to the reporter when an
// admin moves the ticket to a new status.
func ComposeStatusChangeEmail(s TicketSnapshot, oldStatus, baseURL string) EmailMessage {
	subject := fmt.Sprintf("[Helpdesk] Ticket #%d is now %s", s.ID, labelFor(statusLabels, s.Status))

	var htmlBody strings.Builder
	htmlBody.WriteString(`<div style="font-family:sans-serif">`)
	htmlBody.WriteString(fmt.Sprintf("<h2>Ticket #%d status changed</h2>", s.ID))
	htmlBody.WriteString("<table cellpadding=\"4\">")
	writeHTMLRow(&htmlBody, "Title", s.Title)
	writeHTMLRow(&htmlBody, "Previous status", labelFor(statusLabels, oldStatus))
	writeHTMLRow(&htmlBody, "New status", labelFor(statusLabels, s.Status))
	writeHTMLRow(&htmlBody, "Priority", labelFor(priorityLabels, s.Priority))
	htmlBody.WriteString("</table>")
	htmlBody.WriteString(fmt.Sprintf(`<p><a href="%s">View ticket</a></p>`, ticketURL(baseURL, s.ID)))
	htmlBody.WriteString("</div>")

	var text strings.Builder
	fmt.Fprintf(&text, "Ticket #%d status changed\n\n", s.ID)
	fmt.Fprintf(&text, "Title: %s\n", s.Title)
	fmt.Fprintf(&text, "Previous status: %s\n", labelFor(statusLabels, oldStatus))
	fmt.Fprintf(&text, "New status: %s\n\n", labelFor(statusLabels, s.Status))
	fmt.Fprintf(&text, "View: %s\n", ticketURL(baseURL, s.ID))

	return EmailMessage{Subject: subject, HTML: htmlBody.String(), Text: text.String()}
}

// ComposeEscalationEmail renders the alert sent to the IT team mailbox for
// tickets created with high or urgent priority.
func ComposeEscalationEmail(s TicketSnapshot, baseURL string) EmailMessage {
	subject := fmt.Sprintf("[Helpdesk][%s] Ticket #%d needs attention: %s",
		labelFor(priorityLabels, s.Priority), s.ID, s.Title)

	var htmlBody strings.Builder
	htmlBody.WriteString(`<div style="font-family:sans-serif">`)
	htmlBody.WriteString(fmt.Sprintf("<h2>%s priority ticket #%d</h2>", labelFor(priorityLabels, s.Priority), s.ID))
	htmlBody.WriteString("<table cellpadding=\"4\">")
	writeHTMLRow(&htmlBody, "Title", s.Title)
	writeHTMLRow(&htmlBody, "Reported by", s.ReporterName)
	writeHTMLRow(&htmlBody, "Category", labelFor(categoryLabels, s.Category))
	writeHTMLRow(&htmlBody, "Description", s.Description)
	htmlBody.WriteString("</table>")
	htmlBody.WriteString(fmt.Sprintf(`<p><a href="%s">Open ticket</a></p>`, ticketURL(baseURL, s.ID)))
	htmlBody.WriteString("</div>")

	var text strings.Builder
	fmt.Fprintf(&text, "%s priority ticket #%d\n\n", labelFor(priorityLabels, s.Priority), s.ID)
	fmt.Fprintf(&text, "Title: %s\n", s.Title)
	fmt.Fprintf(&text, "Reported by: %s\n", s.ReporterName)
	fmt.Fprintf(&text, "Category: %s\n", labelFor(categoryLabels, s.Category))
	fmt.Fprintf(&text, "Description: %s\n\n", s.Description)
	fmt.Fprintf(&text, "Open: %s\n", ticketURL(baseURL, s.ID))

	return EmailMessage{Subject: subject, HTML: htmlBody.String(), Text: text.String()}
}

func writeHTMLRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<tr><td><b>%s</b></td><td>%s</td></tr>", html.EscapeString(label), html.EscapeString(value))
}

// ComposeTicketChatCard builds the flex card for a ticket event. The accent
// color tracks priority for creations and escalations, status for updates.
func ComposeTicketChatCard(s TicketSnapshot, kind EventKind, oldStatus, baseURL string) linechat.Card {
	card := linechat.Card{
		ButtonLabel: "Open ticket",
		ButtonURL:   ticketURL(baseURL, s.ID),
	}

	switch kind {
	case EventITTeamEscalation:
		card.AltText = fmt.Sprintf("Urgent attention: ticket #%d", s.ID)
		card.Title = fmt.Sprintf("🚨 %s ticket #%d", labelFor(priorityLabels, s.Priority), s.ID)
		card.AccentColor = colorFor(priorityColors, s.Priority)
		card.Lines = []linechat.CardLine{
			{Label: "Title", Value: s.Title},
			{Label: "From", Value: s.ReporterName},
			{Label: "Category", Value: labelFor(categoryLabels, s.Category)},
			{Label: "Priority", Value: labelFor(priorityLabels, s.Priority)},
		}
	case EventStatusUpdate:
		card.AltText = fmt.Sprintf("Ticket #%d is now %s", s.ID, labelFor(statusLabels, s.Status))
		card.Title = fmt.Sprintf("Ticket #%d updated", s.ID)
		card.AccentColor = colorFor(statusColors, s.Status)
		card.Lines = []linechat.CardLine{
			{Label: "Title", Value: s.Title},
			{Label: "Status", Value: fmt.Sprintf("%s → %s", labelFor(statusLabels, oldStatus), labelFor(statusLabels, s.Status))},
			{Label: "Priority", Value: labelFor(priorityLabels, s.Priority)},
		}
	default:
		card.AltText = fmt.Sprintf("New ticket #%d: %s", s.ID, s.Title)
		card.Title = fmt.Sprintf("New ticket #%d", s.ID)
		card.AccentColor = colorFor(priorityColors, s.Priority)
		card.Lines = []linechat.CardLine{
			{Label: "Title", Value: s.Title},
			{Label: "From", Value: s.ReporterName},
			{Label: "Category", Value: labelFor(categoryLabels, s.Category)},
			{Label: "Priority", Value: labelFor(priorityLabels, s.Priority)},
		}
	}

	return card
}

// ComposeEmailRequestChatCard builds the IT team card for a new-mailbox
// request.
func ComposeEmailRequestChatCard(s EmailRequestSnapshot) linechat.Card {
	name := s.EnglishName
	if s.Nickname != "" {
		name = fmt.Sprintf("%s (%s)", s.EnglishName, s.Nickname)
	}
	return linechat.Card{
		AltText:     fmt.Sprintf("New email account request for %s", s.EnglishName),
		Title:       "📧 New email account request",
		AccentColor: "#00695c",
		Lines: []linechat.CardLine{
			{Label: "Name", Value: name},
			{Label: "Thai name", Value: s.ThaiName},
			{Label: "Position", Value: s.Position},
			{Label: "Department", Value: s.Department},
			{Label: "Phone", Value: s.Phone},
			{Label: "Reply to", Value: s.ReplyEmail},
		},
	}
}
