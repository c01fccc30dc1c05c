package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/domain"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/repo"
)

// Outcome is the terminal state of processing one channel folder.
type Outcome int

const (
	// OutcomeAlreadyDone means the completion flag was set by a prior run.
	OutcomeAlreadyDone Outcome = iota
	// OutcomeProcessed means target-year messages were counted and flushed.
	OutcomeProcessed
	// OutcomeSkipped means the channel completed with zero counts (empty
	// list, stale newest message, or no target-year messages after the scan).
	OutcomeSkipped
	// OutcomeError means the folder was left unprocessed and will be retried
	// next run (missing files, bad descriptor, unparseable head timestamp).
	OutcomeError
)

// ChannelProcessor is the per-conversation unit of work: load descriptor and
// messages, scan for target-year features, flush counters atomically, mark
// complete.
type ChannelProcessor struct {
	stats         repo.StatsRepo
	export        repo.ExportRepo
	resolver      *IdentityResolver // optional
	year          int
	storeMessages bool
	log           zerolog.Logger
}

// NewChannelProcessor creates a processor for one target year. resolver may
// be nil when no label index is configured.
func NewChannelProcessor(
	stats repo.StatsRepo,
	export repo.ExportRepo,
	resolver *IdentityResolver,
	year int,
	storeMessages bool,
	log zerolog.Logger,
) *ChannelProcessor {
	return &ChannelProcessor{
		stats:         stats,
		export:        export,
		resolver:      resolver,
		year:          year,
		storeMessages: storeMessages,
		log:           log,
	}
}

// Process handles one channel folder. The returned error is non-nil only for
// store-level failures, which abort the run; soft failures are reported
// through the Outcome.
func (p *ChannelProcessor) Process(ctx context.Context, folder string) (Outcome, error) {
	done, err := p.stats.IsChannelProcessed(ctx, folder)
	if err != nil {
		return OutcomeError, fmt.Errorf("check processed: %w", err)
	}
	if done {
		p.log.Debug().Str("folder", folder).Msg("already processed, skipping")
		return OutcomeAlreadyDone, nil
	}

	ch, err := p.export.Channel(folder)
	if err != nil {
		p.logSoftError(folder, err)
		return OutcomeError, nil
	}
	msgs, err := p.export.Messages(folder)
	if err != nil {
		p.logSoftError(folder, err)
		return OutcomeError, nil
	}

	if len(msgs) == 0 {
		p.log.Debug().Str("folder", folder).Msg("no messages")
		if err := p.markProcessed(ctx, ch, 0, 0); err != nil {
			return OutcomeError, err
		}
		return OutcomeSkipped, nil
	}

	// Lists are newest-first: if the newest message predates the target year
	// the channel cannot contain target-year messages, so nothing else needs
	// scanning. An unparseable head timestamp leaves the folder unprocessed
	// for a retry.
	head, err := msgs[0].Time()
	if err != nil {
		p.log.Warn().Str("folder", folder).Str("timestamp", msgs[0].Timestamp).Msg("invalid newest-message timestamp")
		return OutcomeError, nil
	}
	if head.Year() < p.year {
		p.log.Debug().Str("folder", folder).Str("newest", msgs[0].Timestamp).Msg("newest message predates target year")
		if err := p.markProcessed(ctx, ch, 0, 0); err != nil {
			return OutcomeError, err
		}
		return OutcomeSkipped, nil
	}

	res := p.scan(ch, msgs)

	if res.MessageCount == 0 {
		if err := p.markProcessed(ctx, ch, 0, 0); err != nil {
			return OutcomeError, err
		}
		return OutcomeSkipped, nil
	}

	if err := p.flush(ctx, res); err != nil {
		return OutcomeError, fmt.Errorf("flush %s: %w", folder, err)
	}

	// Identity resolution runs after the channel commit; a failure here must
	// not unwind the already-committed counters.
	if p.resolver != nil && ch.IsDirect() {
		if err := p.resolver.Resolve(ctx, ch); err != nil {
			p.log.Warn().Str("folder", folder).Err(err).Msg("identity resolution failed")
		}
	}

	p.log.Debug().
		Str("folder", folder).
		Int("messages", res.MessageCount).
		Int("emotes", len(res.EmoteCounts)).
		Int("with_attachments", res.AttachmentMessages).
		Msg("processed")
	return OutcomeProcessed, nil
}

// scan walks the newest-first list toward older messages, accumulating
// target-year features. Messages newer than the target year are skipped;
// the first message older than the target year ends the scan, since all
// remaining messages are older still.
func (p *ChannelProcessor) scan(ch *domain.Channel, msgs []domain.Message) *domain.ChannelResult {
	res := domain.NewChannelResult(ch)
	for i := range msgs {
		m := &msgs[i]
		t, err := m.Time()
		if err != nil {
			res.TimestampErrors++
			continue
		}
		if t.Year() > p.year {
			continue
		}
		if t.Year() < p.year {
			break
		}

		res.MessageCount++
		for _, ref := range ExtractEmotes(m.Contents) {
			res.EmoteCounts[ref.ID]++
			res.EmoteNames[ref.ID] = ref.Name
		}
		if exts := ExtractFileTypes(m.Attachments); len(exts) > 0 {
			res.AttachmentMessages++
			for _, ext := range exts {
				res.ExtCounts[ext]++
			}
		}
		if p.storeMessages {
			res.Messages = append(res.Messages, domain.MessageRecord{
				ID:             m.ID,
				Folder:         ch.Folder,
				Timestamp:      m.Timestamp,
				Year:           t.Year(),
				Month:          int(t.Month()),
				Day:            t.Day(),
				HasContent:     m.HasContent(),
				HasAttachments: m.HasAttachments(),
			})
		}
	}
	if res.TimestampErrors > 0 {
		p.log.Warn().Str("folder", ch.Folder).Int("skipped", res.TimestampErrors).Msg("messages skipped for bad timestamps")
	}
	return res
}

// flush applies one channel's accumulated tallies as single aggregated
// increments per distinct feature, together with the channel row and its
// completion flag, in one transaction. A crash can therefore never leave
// counters incremented without the channel marked complete.
func (p *ChannelProcessor) flush(ctx context.Context, res *domain.ChannelResult) error {
	return p.stats.InTx(ctx, func(w repo.StatsWriter) error {
		for id, count := range res.EmoteCounts {
			if err := w.IncrementEmote(ctx, id, res.EmoteNames[id], count); err != nil {
				return err
			}
		}
		for ext, count := range res.ExtCounts {
			if err := w.IncrementFileType(ctx, ext, count); err != nil {
				return err
			}
		}
		for i := range res.Messages {
			if err := w.InsertMessageIfAbsent(ctx, &res.Messages[i]); err != nil {
				return err
			}
		}
		return w.UpsertChannel(ctx, res.Channel, res.MessageCount, res.AttachmentMessages, true)
	})
}

// markProcessed completes a channel with zero counts so it is never
// rescanned.
func (p *ChannelProcessor) markProcessed(ctx context.Context, ch *domain.Channel, msgCount, attachCount int) error {
	err := p.stats.InTx(ctx, func(w repo.StatsWriter) error {
		return w.UpsertChannel(ctx, ch, msgCount, attachCount, true)
	})
	if err != nil {
		return fmt.Errorf("mark processed %s: %w", ch.Folder, err)
	}
	return nil
}

func (p *ChannelProcessor) logSoftError(folder string, err error) {
	if errors.Is(err, domain.ErrMissingExportFile) {
		p.log.Warn().Str("folder", folder).Msg("missing channel or message file")
		return
	}
	p.log.Warn().Str("folder", folder).Err(err).Msg("unreadable channel folder")
}
