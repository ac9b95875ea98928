package domain

import (
	"strings"
	"time"
)

// State is the lifecycle state GitHub reports for an issue.
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

// IsClosed reports whether the state is "closed", ignoring case and padding.
func (s State) IsClosed() bool {
	return State(strings.ToLower(strings.TrimSpace(string(s)))) == StateClosed
}

// Label is a tag attached to an issue. Only the name matters for the board.
type Label struct {
	Name string `json:"name"`
}

// Issue mirrors the subset of the GitHub issue payload the board renders.
// Unknown fields in the payload are ignored on decode.
type Issue struct {
	ID        int64     `json:"id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      *string   `json:"body"`
	State     State     `json:"state"`
	Labels    []Label   `json:"labels"`
	HTMLURL   string    `json:"html_url"`
	CreatedAt time.Time `json:"created_at"`
}

// BodyText returns the body or "" when GitHub sent null.
func (i Issue) BodyText() string {
	if i.Body == nil {
		return ""
	}
	return *i.Body
}

// BodyPreview is the single-line card description.
func (i Issue) BodyPreview() string {
	return Truncate(i.BodyText(), BodyPreviewLength)
}

// LabelNames returns the lower-cased label names in their original order.
func (i Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, strings.ToLower(l.Name))
	}
	return names
}

// HasLabel reports whether any label matches name case-insensitively.
func (i Issue) HasLabel(name string) bool {
	want := strings.ToLower(name)
	for _, l := range i.Labels {
		if strings.ToLower(l.Name) == want {
			return true
		}
	}
	return false
}
