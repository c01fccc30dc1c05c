package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/repo"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/usecase"
)

// Analyzer drives the aggregation pass: enumerate conversation folders, skip
// completed ones, process the rest sequentially, and report progress and a
// final summary. Resumable by construction: every conversation commits
// atomically, so an interrupted run restarts exactly where it stopped.
type Analyzer struct {
	processor     *usecase.ChannelProcessor
	export        repo.ExportRepo
	query         repo.StatsQuery
	year          int
	progressEvery int
	out           io.Writer
	log           zerolog.Logger
}

// NewAnalyzer creates the aggregation driver.
func NewAnalyzer(
	processor *usecase.ChannelProcessor,
	export repo.ExportRepo,
	query repo.StatsQuery,
	year int,
	progressEvery int,
	out io.Writer,
	log zerolog.Logger,
) *Analyzer {
	return &Analyzer{
		processor:     processor,
		export:        export,
		query:         query,
		year:          year,
		progressEvery: progressEvery,
		out:           out,
		log:           log,
	}
}

// RunStats tallies one run's per-channel outcomes.
type RunStats struct {
	Total       int
	AlreadyDone int
	Processed   int
	Skipped     int
	Errors      int
}

// Run executes the aggregation pass. Cancelling ctx stops cleanly between
// conversations; the store stays valid and resumable. The returned error is
// non-nil only for store-level failures.
func (a *Analyzer) Run(ctx context.Context) (*RunStats, error) {
	folders, err := a.export.Folders()
	if err != nil {
		return nil, err
	}

	stats := &RunStats{Total: len(folders)}
	alreadyDone, err := a.query.CountProcessed(ctx)
	if err != nil {
		if ctx.Err() != nil {
			a.logInterrupted()
			return stats, nil
		}
		return nil, err
	}
	a.log.Info().
		Int("year", a.year).
		Int("folders", stats.Total).
		Int("already_processed", alreadyDone).
		Int("remaining", stats.Total-alreadyDone).
		Msg("starting aggregation")

	start := time.Now()
	handled := 0
	for _, folder := range folders {
		select {
		case <-ctx.Done():
			a.logInterrupted()
			return stats, nil
		default:
		}

		outcome, err := a.processor.Process(ctx, folder)
		if err != nil {
			// An interrupt landing mid-conversation surfaces as a store error
			// from the in-flight call. The conversation did not commit, so it
			// is picked up on the next run like any other interrupt.
			if ctx.Err() != nil {
				a.logInterrupted()
				return stats, nil
			}
			return stats, err
		}
		switch outcome {
		case usecase.OutcomeAlreadyDone:
			stats.AlreadyDone++
		case usecase.OutcomeProcessed:
			stats.Processed++
		case usecase.OutcomeSkipped:
			stats.Skipped++
		case usecase.OutcomeError:
			stats.Errors++
		}

		handled++
		if handled%a.progressEvery == 0 {
			a.reportProgress(ctx, stats, handled, start)
		}
	}

	if err := a.printSummary(ctx, stats); err != nil {
		if ctx.Err() != nil {
			a.logInterrupted()
			return stats, nil
		}
		return stats, err
	}
	return stats, nil
}

func (a *Analyzer) logInterrupted() {
	a.log.Warn().Msg("interrupted; completed conversations are saved, run again to resume")
}

// reportProgress emits one advisory progress line: done/total, percentage,
// throughput, ETA, and the running message total.
func (a *Analyzer) reportProgress(ctx context.Context, stats *RunStats, handled int, start time.Time) {
	elapsed := time.Since(start).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(handled) / elapsed
	}
	remaining := stats.Total - handled
	eta := time.Duration(0)
	if rate > 0 {
		eta = time.Duration(float64(remaining)/rate) * time.Second
	}

	totalMessages, err := a.query.TotalMessages(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("failed to read running message total")
	}

	a.log.Info().
		Str("progress", fmt.Sprintf("%d/%d (%.1f%%)", handled, stats.Total, float64(handled)/float64(stats.Total)*100)).
		Str("rate", fmt.Sprintf("%.1f/s", rate)).
		Str("eta", eta.Round(time.Second).String()).
		Str("messages", humanize.Comma(totalMessages)).
		Msg("progress")
}

// printSummary writes the final human-readable summary to out.
func (a *Analyzer) printSummary(ctx context.Context, stats *RunStats) error {
	sum, err := a.query.Summary(ctx)
	if err != nil {
		return err
	}
	servers, err := a.query.TopServers(ctx, 10)
	if err != nil {
		return err
	}
	emotes, err := a.query.TopEmotes(ctx, 20)
	if err != nil {
		return err
	}
	fileTypes, err := a.query.FileTypes(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nAnalysis complete for %d\n\n", a.year)
	fmt.Fprintf(a.out, "Summary:\n")
	fmt.Fprintf(a.out, "  Total messages:            %s\n", humanize.Comma(sum.TotalMessages))
	if sum.TotalMessages > 0 {
		pct := float64(sum.AttachmentMessages) / float64(sum.TotalMessages) * 100
		fmt.Fprintf(a.out, "  Messages with attachments: %s (%.1f%%)\n", humanize.Comma(sum.AttachmentMessages), pct)
	} else {
		fmt.Fprintf(a.out, "  Messages with attachments: 0\n")
	}
	fmt.Fprintf(a.out, "  Unique emotes used:        %d\n", sum.DistinctEmotes)
	fmt.Fprintf(a.out, "  Servers:                   %d\n", sum.Servers)
	fmt.Fprintf(a.out, "  DMs:                       %d\n", sum.DMs)
	fmt.Fprintf(a.out, "  Group DMs:                 %d\n", sum.GroupDMs)
	fmt.Fprintf(a.out, "  Folders processed:         %d\n", stats.Processed)
	fmt.Fprintf(a.out, "  Folders skipped:           %d\n", stats.Skipped)
	fmt.Fprintf(a.out, "  Folders with errors:       %d\n", stats.Errors)

	if len(servers) > 0 {
		fmt.Fprintf(a.out, "\nTop servers:\n")
		for i, s := range servers {
			fmt.Fprintf(a.out, "  %2d. %s: %s messages\n", i+1, s.Name, humanize.Comma(s.Messages))
		}
	}
	if len(emotes) > 0 {
		fmt.Fprintf(a.out, "\nTop emotes:\n")
		for i, e := range emotes {
			fmt.Fprintf(a.out, "  %2d. :%s: - %s uses\n", i+1, e.Name, humanize.Comma(e.Uses))
		}
	}
	if len(fileTypes) > 0 {
		fmt.Fprintf(a.out, "\nAttachment file types:\n")
		for _, ft := range fileTypes {
			fmt.Fprintf(a.out, "  .%s: %s files\n", ft.Extension, humanize.Comma(ft.Count))
		}
	}
	if sum.MappedUsers > 0 {
		fmt.Fprintf(a.out, "\nMapped %d user IDs to usernames\n", sum.MappedUsers)
	}
	return nil
}
