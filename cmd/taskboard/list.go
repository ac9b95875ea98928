package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/domain"
	"taskboard/internal/github"
	"taskboard/internal/refresh"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const listTimeout = 30 * time.Second

// listTitleWidth keeps text rows on one line in an 80-column terminal.
const listTitleWidth = 50

type listIssue struct {
	Number      int       `json:"number" yaml:"number"`
	Title       string    `json:"title" yaml:"title"`
	State       string    `json:"state" yaml:"state"`
	Labels      []string  `json:"labels" yaml:"labels"`
	URL         string    `json:"url" yaml:"url"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Age         string    `json:"age" yaml:"age"`
	BodyPreview string    `json:"body_preview,omitempty" yaml:"body_preview,omitempty"`
}

type listColumn struct {
	Category domain.Category `json:"category" yaml:"category"`
	Title    string          `json:"title" yaml:"title"`
	Count    int             `json:"count" yaml:"count"`
	Issues   []listIssue     `json:"issues" yaml:"issues"`
}

type listOutput struct {
	Repo      string       `json:"repo" yaml:"repo"`
	FetchedAt time.Time    `json:"fetched_at" yaml:"fetched_at"`
	Columns   []listColumn `json:"columns" yaml:"columns"`
}

func newListCmd() *cobra.Command {
	var (
		format  string
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print a snapshot of the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.Load()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), listTimeout)
			defer cancel()
			return runList(ctx, cmd.OutOrStdout(), newClient(s), newLinks(s), format, noColor, time.Now)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colors in text output")
	return cmd
}

func runList(ctx context.Context, w io.Writer, fetcher github.Fetcher, links github.Links, format string, noColor bool, now func() time.Time) error {
	board, err := refresh.Load(ctx, fetcher)
	if err != nil {
		return err
	}
	out := buildListOutput(board, links, now())

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		profile := termenv.NewOutput(w).EnvColorProfile()
		if noColor {
			profile = termenv.Ascii
		}
		return writeListText(w, out, profile)
	case "json":
		data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

func buildListOutput(board domain.Board, links github.Links, now time.Time) listOutput {
	out := listOutput{Repo: links.FullName(), FetchedAt: now}
	for _, col := range domain.Columns {
		lane := board.Lane(col.Category)
		issues := make([]listIssue, 0, len(lane))
		for _, issue := range lane {
			labels := issue.LabelNames()
			if labels == nil {
				labels = []string{}
			}
			issues = append(issues, listIssue{
				Number:      issue.Number,
				Title:       issue.Title,
				State:       string(issue.State),
				Labels:      labels,
				URL:         issue.HTMLURL,
				CreatedAt:   issue.CreatedAt,
				Age:         domain.TimeAgo(issue.CreatedAt, now),
				BodyPreview: issue.BodyPreview(),
			})
		}
		out.Columns = append(out.Columns, listColumn{
			Category: col.Category,
			Title:    col.Title,
			Count:    len(lane),
			Issues:   issues,
		})
	}
	return out
}

func writeListText(w io.Writer, out listOutput, profile termenv.Profile) error {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	heading := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	number := r.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))
	dim := r.NewStyle().Foreground(lipgloss.Color("#6272A4"))

	var b strings.Builder
	b.WriteString(heading.Render(out.Repo))
	b.WriteString("\n")
	for _, col := range out.Columns {
		meta, _ := domain.ColumnFor(col.Category)
		b.WriteString("\n")
		b.WriteString(heading.Render(fmt.Sprintf("%s %s (%d)", meta.Icon, col.Title, col.Count)))
		b.WriteString("\n")
		if len(col.Issues) == 0 {
			b.WriteString(dim.Render("  No tasks"))
			b.WriteString("\n")
			continue
		}
		for _, issue := range col.Issues {
			title := ansi.Truncate(issue.Title, listTitleWidth, "…")
			fmt.Fprintf(&b, "  %s %-*s %s\n",
				number.Render(fmt.Sprintf("#%-5d", issue.Number)),
				listTitleWidth, title,
				dim.Render(issue.Age))
			if issue.BodyPreview != "" {
				b.WriteString(dim.Render("         " + issue.BodyPreview))
				b.WriteString("\n")
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
