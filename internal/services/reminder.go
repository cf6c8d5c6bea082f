package services

import "regexp"

var reminderRx = regexp.MustCompile(`(?i)\b(remind(er|ers)?|remember to|don'?t forget|deadline|due|overdue|asap|urgent|today|tonight|tomorrow|by (monday|tuesday|wednesday|thursday|friday|saturday|sunday|eod|noon|midnight|next week))\b`)

// IsReminder reports whether content reads like a reminder or deadline.
func IsReminder(content string) bool {
	return reminderRx.MatchString(content)
}
