package domain

import (
	"fmt"
	"strings"
	"time"
)

// BodyPreviewLength is the character budget for card descriptions.
const BodyPreviewLength = 100

// ellipsis is appended to truncated text.
const ellipsis = "..."

// calendarDateLayout is used once an issue is a week old or more.
const calendarDateLayout = "Jan 2, 2006"

var timeNow = time.Now

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ")

// Truncate flattens text onto one line and caps it at maxLen characters.
// Every line break becomes a single space and the result is trimmed. Text
// longer than maxLen is cut to exactly maxLen characters followed by "...".
func Truncate(text string, maxLen int) string {
	if text == "" {
		return ""
	}
	cleaned := strings.TrimSpace(lineBreaks.Replace(text))
	runes := []rune(cleaned)
	if maxLen < 0 {
		maxLen = 0
	}
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + ellipsis
	}
	return cleaned
}

// TimeAgo describes how long before now t happened:
//
//	< 1 minute  "just now"
//	< 1 hour    "{n}m ago"
//	< 1 day     "{n}h ago"
//	< 7 days    "{n}d ago"
//	otherwise   a short calendar date such as "Mar 4, 2026"
//
// Each bucket's lower bound is inclusive, so exactly 60 seconds is "1m ago".
func TimeAgo(t, now time.Time) string {
	seconds := int64(now.Sub(t) / time.Second)
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 604800:
		return fmt.Sprintf("%dd ago", seconds/86400)
	default:
		return t.In(now.Location()).Format(calendarDateLayout)
	}
}

// TimeAgoNow is TimeAgo against the current clock.
func TimeAgoNow(t time.Time) string {
	return TimeAgo(t, timeNow())
}
