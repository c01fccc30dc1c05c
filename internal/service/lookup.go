package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/repo"
)

// Lookup serves the read-only query modes over an existing analysis
// database. It never mutates the store.
type Lookup struct {
	query repo.StatsQuery
	out   io.Writer
}

// NewLookup creates a lookup service writing to out.
func NewLookup(query repo.StatsQuery, out io.Writer) *Lookup {
	return &Lookup{query: query, out: out}
}

// Servers prints channels of all servers whose name contains substr, with a
// grand total.
func (l *Lookup) Servers(ctx context.Context, substr string) error {
	channels, err := l.query.SearchServers(ctx, substr)
	if err != nil {
		return err
	}
	if len(channels) == 0 {
		fmt.Fprintf(l.out, "No servers found matching %q\n", substr)
		return nil
	}

	fmt.Fprintf(l.out, "Channels in servers matching %q:\n", substr)
	var total, totalAttach int64
	for _, ch := range channels {
		fmt.Fprintf(l.out, "  #%s: %s messages (%s with attachments)\n",
			ch.Name, humanize.Comma(ch.Messages), humanize.Comma(ch.AttachmentMessages))
		total += ch.Messages
		totalAttach += ch.AttachmentMessages
	}
	fmt.Fprintf(l.out, "\n  TOTAL: %s messages (%s with attachments)\n",
		humanize.Comma(total), humanize.Comma(totalAttach))
	return nil
}

// Emotes prints emotes whose name contains substr.
func (l *Lookup) Emotes(ctx context.Context, substr string) error {
	emotes, err := l.query.SearchEmotes(ctx, substr)
	if err != nil {
		return err
	}
	if len(emotes) == 0 {
		fmt.Fprintf(l.out, "No emotes found matching %q\n", substr)
		return nil
	}
	fmt.Fprintf(l.out, "Emotes matching %q:\n", substr)
	for _, e := range emotes {
		fmt.Fprintf(l.out, "  :%s: - %s uses\n", e.Name, humanize.Comma(e.Uses))
	}
	return nil
}

// Users prints identity mappings whose username or ID contains substr.
func (l *Lookup) Users(ctx context.Context, substr string) error {
	users, err := l.query.SearchUsers(ctx, substr)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintf(l.out, "No users found matching %q\n", substr)
		return nil
	}
	fmt.Fprintf(l.out, "Users matching %q:\n", substr)
	for _, u := range users {
		fmt.Fprintf(l.out, "  %s (ID: %s)\n", u.Username, u.UserID)
	}
	return nil
}

// Console runs the interactive raw-query loop: one SQL statement per line,
// "exit" or "quit" to leave. Statement errors are printed and the loop
// continues.
func (l *Lookup) Console(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(l.out, "Query mode. Type a SQL statement per line, 'exit' to quit.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(l.out, "SQL> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			break
		}

		cols, rows, err := l.query.RawQuery(ctx, line)
		if err != nil {
			fmt.Fprintf(l.out, "Error: %v\n\n", err)
			continue
		}
		if len(rows) == 0 {
			fmt.Fprintln(l.out, "(no results)")
			fmt.Fprintln(l.out)
			continue
		}
		fmt.Fprintln(l.out, strings.Join(cols, " | "))
		for _, row := range rows {
			fmt.Fprintln(l.out, strings.Join(row, " | "))
		}
		fmt.Fprintf(l.out, "\n(%d rows)\n\n", len(rows))
	}
	return scanner.Err()
}
