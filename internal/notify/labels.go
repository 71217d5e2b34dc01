package notify

import "helpdesk-system/pkg/constants"

var categoryLabels = map[string]string{
	constants.CategoryHardware: "Hardware",
	constants.CategorySoftware: "Software",
	constants.CategoryNetwork:  "Network",
	constants.CategoryAccount:  "Account",
	constants.CategoryEmail:    "Email",
	constants.CategoryPrinter:  "Printer",
	constants.CategoryOther:    "Other",
}

var priorityLabels = map[string]string{
	constants.PriorityLow:    "Low",
	constants.PriorityMedium: "Medium",
	constants.PriorityHigh:   "High",
	constants.PriorityUrgent: "Urgent",
}

var statusLabels = map[string]string{
	constants.StatusOpen:       "Open",
	constants.StatusInProgress: "In Progress",
	constants.StatusResolved:   "Resolved",
	constants.StatusClosed:     "Closed",
	constants.StatusCancelled:  "Cancelled",
}

var priorityColors = map[string]string{
	constants.PriorityLow:    "#2e7d32",
	constants.PriorityMedium: "#f9a825",
	constants.PriorityHigh:   "#ef6c00",
	constants.PriorityUrgent: "#c62828",
}

var statusColors = map[string]string{
	constants.StatusOpen:       "#1565c0",
	constants.StatusInProgress: "#6a1b9a",
	constants.StatusResolved:   "#2e7d32",
	constants.StatusClosed:     "#455a64",
	constants.StatusCancelled:  "#9e9e9e",
}

// labelFor falls back to the raw enum value so an unknown constant still
// renders something instead of an empty cell.
func labelFor(labels map[string]string, value string) string {
	if label, ok := labels[value]; ok {
		return label
	}
	return value
}

func colorFor(colors map[string]string, value string) string {
	if color, ok := colors[value]; ok {
		return color
	}
	return "#546e7a"
}
