package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/domain"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/repo"
)

// Snapshot is the aggregate state the projector renders. It is read once
// from the counter store; rendering is a pure transform from here on.
type Snapshot struct {
	TargetYear  int
	GeneratedAt time.Time
	Summary     domain.Summary
	Servers     []domain.ServerStat
	DMs         []DMEntry
	GroupDMs    []GroupEntry
	Emotes      []domain.EmoteStat
	FileTypes   []domain.FileTypeStat
}

// DMEntry is one DM rollup with its counterpart resolved to a display name
// where a mapping exists.
type DMEntry struct {
	UserID             string
	Username           string
	Messages           int64
	AttachmentMessages int64
}

// GroupEntry is one group DM rollup with whatever member names resolved.
type GroupEntry struct {
	MemberCount        int
	Usernames          []string
	Messages           int64
	AttachmentMessages int64
}

// DisplayName renders the counterpart's name, falling back to the raw ID.
func (d DMEntry) DisplayName() string {
	if d.Username != "" {
		return d.Username
	}
	return d.UserID
}

// MemberList renders resolved member names, or a size-only description when
// none resolved.
func (g GroupEntry) MemberList() string {
	if len(g.Usernames) == 0 {
		return fmt.Sprintf("%d members", g.MemberCount)
	}
	return strings.Join(g.Usernames, ", ")
}

// Build reads a snapshot from the counter store. selfID is required: without
// it the DM counterpart cannot be told apart from the export owner.
func Build(ctx context.Context, query repo.StatsQuery, year int, selfID string) (*Snapshot, error) {
	if selfID == "" {
		return nil, errors.New("self user ID is required to attribute direct messages")
	}
	snap := &Snapshot{TargetYear: year, GeneratedAt: time.Now()}

	sum, err := query.Summary(ctx)
	if err != nil {
		return nil, err
	}
	snap.Summary = *sum

	if snap.Servers, err = query.TopServers(ctx, 0); err != nil {
		return nil, err
	}

	dms, err := query.DirectMessages(ctx, 20)
	if err != nil {
		return nil, err
	}
	for _, dm := range dms {
		entry := DMEntry{
			UserID:             otherParticipant(dm.Recipients, selfID),
			Messages:           dm.Messages,
			AttachmentMessages: dm.AttachmentMessages,
		}
		if entry.UserID != "" {
			if entry.Username, err = query.Username(ctx, entry.UserID); err != nil {
				return nil, err
			}
		}
		snap.DMs = append(snap.DMs, entry)
	}

	groups, err := query.GroupDMs(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		entry := GroupEntry{
			MemberCount:        len(g.Recipients),
			Messages:           g.Messages,
			AttachmentMessages: g.AttachmentMessages,
		}
		for _, id := range g.Recipients {
			if id == selfID {
				continue
			}
			name, err := query.Username(ctx, id)
			if err != nil {
				return nil, err
			}
			if name != "" {
				entry.Usernames = append(entry.Usernames, name)
			}
		}
		snap.GroupDMs = append(snap.GroupDMs, entry)
	}

	if snap.Emotes, err = query.TopEmotes(ctx, 50); err != nil {
		return nil, err
	}
	if snap.FileTypes, err = query.FileTypes(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

// Render writes the snapshot as a static HTML document.
func Render(w io.Writer, snap *Snapshot) error {
	return pageTemplate.Execute(w, snap)
}

// otherParticipant picks the first recipient that is not the export owner.
// Recipient sets are canonically sorted, so the pick is deterministic.
func otherParticipant(recipients []string, selfID string) string {
	for _, id := range recipients {
		if id != selfID {
			return id
		}
	}
	if len(recipients) > 0 {
		return recipients[0]
	}
	return ""
}
