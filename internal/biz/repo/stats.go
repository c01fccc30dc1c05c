package repo

import (
	"context"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/domain"
)

// StatsWriter holds the mutating counter operations. Implementations run the
// writes either directly against the database or inside a transaction; the
// processor only ever sees the transactional form.
type StatsWriter interface {
	// UpsertChannel insert-or-replaces the full channel row. Callers supply
	// the complete field set every time; processed marks the completion flag.
	UpsertChannel(ctx context.Context, ch *domain.Channel, msgCount, attachCount int, processed bool) error

	// IncrementEmote adds delta to an emote's usage count, creating the entry
	// if absent, and overwrites the display name with the latest-seen value.
	IncrementEmote(ctx context.Context, emoteID, name string, delta int) error

	// IncrementFileType adds delta to an extension's count, creating the
	// entry if absent.
	IncrementFileType(ctx context.Context, ext string, delta int) error

	// InsertMessageIfAbsent stores a per-message detail row; no-op when the
	// message ID already exists.
	InsertMessageIfAbsent(ctx context.Context, rec *domain.MessageRecord) error
}

// StatsRepo is the durable counter store. All operations are safe to repeat
// with cumulative semantics.
type StatsRepo interface {
	// IsChannelProcessed reports whether a channel's completion flag is set.
	IsChannelProcessed(ctx context.Context, folder string) (bool, error)

	// UpsertUserMapping stores a participant identity mapping, last write
	// wins. No-op when either argument is empty.
	UpsertUserMapping(ctx context.Context, userID, username string) error

	// InTx runs fn inside one transaction. All writes commit together or not
	// at all; a channel's counters and its completion flag must share one
	// InTx call.
	InTx(ctx context.Context, fn func(StatsWriter) error) error

	// Close closes the underlying database.
	Close() error
}

// StatsQuery is the read side of the counter store, consumed by the driver's
// summary, the lookup modes, and the report projector. Never mutates.
type StatsQuery interface {
	// CountProcessed counts channels with the completion flag set.
	CountProcessed(ctx context.Context) (int, error)

	// TotalMessages sums target-year message counts across all channels.
	TotalMessages(ctx context.Context) (int64, error)

	// Summary collects the run-level totals.
	Summary(ctx context.Context) (*domain.Summary, error)

	// TopServers returns server rollups ordered by message count.
	TopServers(ctx context.Context, limit int) ([]domain.ServerStat, error)

	// TopEmotes returns emote entries ordered by usage count.
	TopEmotes(ctx context.Context, limit int) ([]domain.EmoteStat, error)

	// FileTypes returns all extension counts ordered by count.
	FileTypes(ctx context.Context) ([]domain.FileTypeStat, error)

	// DirectMessages returns DM rollups ordered by message count.
	DirectMessages(ctx context.Context, limit int) ([]domain.DirectStat, error)

	// GroupDMs returns all group DM rollups ordered by message count.
	GroupDMs(ctx context.Context) ([]domain.DirectStat, error)

	// SearchServers lists channels of servers whose name contains substr.
	SearchServers(ctx context.Context, substr string) ([]domain.ChannelStat, error)

	// SearchEmotes lists emotes whose name contains substr.
	SearchEmotes(ctx context.Context, substr string) ([]domain.EmoteStat, error)

	// SearchUsers lists mappings whose username or ID contains substr.
	SearchUsers(ctx context.Context, substr string) ([]domain.UserMapping, error)

	// Username resolves a participant ID; empty string when unmapped.
	Username(ctx context.Context, userID string) (string, error)

	// RawQuery executes an arbitrary SQL statement for the interactive
	// console and returns column names plus stringified rows.
	RawQuery(ctx context.Context, query string) ([]string, [][]string, error)
}
