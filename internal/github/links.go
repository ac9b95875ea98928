package github

import (
	"fmt"
	"net/url"
	"strings"
)

// newTaskLabel pre-selects the To Do lane for issues created from the board.
const (
	newTaskLabel = "todo"
	newTaskTitle = "New Task"
)

// Links builds github.com deep links for a repository. Creating and editing
// issues is always delegated to these pages.
type Links struct {
	WebURL string
	Owner  string
	Repo   string
}

// NewLinks returns links rooted at webURL, falling back to DefaultWebURL.
func NewLinks(webURL, owner, repo string) Links {
	webURL = strings.TrimRight(strings.TrimSpace(webURL), "/")
	if webURL == "" {
		webURL = DefaultWebURL
	}
	return Links{WebURL: webURL, Owner: owner, Repo: repo}
}

// Repository is the repository home page.
func (l Links) Repository() string {
	return fmt.Sprintf("%s/%s/%s", l.WebURL, url.PathEscape(l.Owner), url.PathEscape(l.Repo))
}

// Issues is the repository issue list.
func (l Links) Issues() string {
	return l.Repository() + "/issues"
}

// NewIssue is the new-issue form with the todo label and a placeholder title.
func (l Links) NewIssue() string {
	q := url.Values{}
	q.Set("labels", newTaskLabel)
	q.Set("title", newTaskTitle)
	return l.Issues() + "/new?" + q.Encode()
}

// FullName returns "owner/repo".
func (l Links) FullName() string {
	return l.Owner + "/" + l.Repo
}
