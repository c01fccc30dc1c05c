package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/domain"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/repo"
)

var (
	_ repo.StatsRepo  = (*StatsStore)(nil)
	_ repo.StatsQuery = (*StatsStore)(nil)
)

// CountProcessed counts channels with the completion flag set.
func (s *StatsStore) CountProcessed(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM channels WHERE processed = 1
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count processed channels: %w", err)
	}
	return count, nil
}

// TotalMessages sums the per-channel target-year message counts.
func (s *StatsStore) TotalMessages(ctx context.Context) (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(message_count) FROM channels
	`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum messages: %w", err)
	}
	return total.Int64, nil
}

// Summary collects the run-level totals.
func (s *StatsStore) Summary(ctx context.Context) (*domain.Summary, error) {
	var sum domain.Summary
	var messages, attachments sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(message_count), SUM(messages_with_attachments) FROM channels
	`).Scan(&messages, &attachments)
	if err != nil {
		return nil, fmt.Errorf("failed to sum channel counts: %w", err)
	}
	sum.TotalMessages = messages.Int64
	sum.AttachmentMessages = attachments.Int64

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM emotes`, &sum.DistinctEmotes},
		{`SELECT COUNT(DISTINCT server_id) FROM channels
			WHERE channel_type NOT IN ('DM', 'GROUP_DM') AND server_id IS NOT NULL`, &sum.Servers},
		{`SELECT COUNT(DISTINCT recipients) FROM channels WHERE channel_type = 'DM'`, &sum.DMs},
		{`SELECT COUNT(DISTINCT recipients) FROM channels WHERE channel_type = 'GROUP_DM'`, &sum.GroupDMs},
		{`SELECT COUNT(*) FROM users`, &sum.MappedUsers},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to build summary: %w", err)
		}
	}
	return &sum, nil
}

// TopServers returns server rollups ordered by message count, limit <= 0
// meaning no limit.
func (s *StatsStore) TopServers(ctx context.Context, limit int) ([]domain.ServerStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT server_id, server_name, SUM(message_count), SUM(messages_with_attachments)
		FROM channels
		WHERE channel_type NOT IN ('DM', 'GROUP_DM') AND server_name IS NOT NULL
		GROUP BY server_id
		ORDER BY SUM(message_count) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query servers: %w", err)
	}
	defer rows.Close()

	var stats []domain.ServerStat
	for rows.Next() {
		var st domain.ServerStat
		if err := rows.Scan(&st.ID, &st.Name, &st.Messages, &st.AttachmentMessages); err != nil {
			return nil, fmt.Errorf("failed to scan server stat: %w", err)
		}
		stats = append(stats, st)
		if limit > 0 && len(stats) == limit {
			break
		}
	}
	return stats, rows.Err()
}

// TopEmotes returns emote entries ordered by usage count.
func (s *StatsStore) TopEmotes(ctx context.Context, limit int) ([]domain.EmoteStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT emote_id, emote_name, usage_count
		FROM emotes
		ORDER BY usage_count DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query emotes: %w", err)
	}
	defer rows.Close()
	return scanEmotes(rows)
}

// FileTypes returns all extension counts, highest first.
func (s *StatsStore) FileTypes(ctx context.Context) ([]domain.FileTypeStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT extension, count FROM file_types ORDER BY count DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query file types: %w", err)
	}
	defer rows.Close()

	var stats []domain.FileTypeStat
	for rows.Next() {
		var st domain.FileTypeStat
		if err := rows.Scan(&st.Extension, &st.Count); err != nil {
			return nil, fmt.Errorf("failed to scan file type: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// DirectMessages returns DM rollups ordered by message count.
func (s *StatsStore) DirectMessages(ctx context.Context, limit int) ([]domain.DirectStat, error) {
	return s.directStats(ctx, "DM", limit)
}

// GroupDMs returns all group DM rollups ordered by message count.
func (s *StatsStore) GroupDMs(ctx context.Context) ([]domain.DirectStat, error) {
	return s.directStats(ctx, "GROUP_DM", -1)
}

func (s *StatsStore) directStats(ctx context.Context, channelType string, limit int) ([]domain.DirectStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT recipients, SUM(message_count), SUM(messages_with_attachments)
		FROM channels
		WHERE channel_type = ?
		GROUP BY recipients
		ORDER BY SUM(message_count) DESC
	`, channelType)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s stats: %w", channelType, err)
	}
	defer rows.Close()

	var stats []domain.DirectStat
	for rows.Next() {
		var raw string
		var st domain.DirectStat
		if err := rows.Scan(&raw, &st.Messages, &st.AttachmentMessages); err != nil {
			return nil, fmt.Errorf("failed to scan %s stat: %w", channelType, err)
		}
		if err := json.Unmarshal([]byte(raw), &st.Recipients); err != nil {
			return nil, fmt.Errorf("failed to decode recipients: %w", err)
		}
		stats = append(stats, st)
		if limit > 0 && len(stats) == limit {
			break
		}
	}
	return stats, rows.Err()
}

// SearchServers lists channels of servers whose name contains substr.
func (s *StatsStore) SearchServers(ctx context.Context, substr string) ([]domain.ChannelStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT channel_name, message_count, messages_with_attachments
		FROM channels
		WHERE server_name LIKE ?
		ORDER BY message_count DESC
	`, "%"+substr+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search servers: %w", err)
	}
	defer rows.Close()

	var stats []domain.ChannelStat
	for rows.Next() {
		var st domain.ChannelStat
		if err := rows.Scan(&st.Name, &st.Messages, &st.AttachmentMessages); err != nil {
			return nil, fmt.Errorf("failed to scan channel stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// SearchEmotes lists emotes whose name contains substr.
func (s *StatsStore) SearchEmotes(ctx context.Context, substr string) ([]domain.EmoteStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT emote_id, emote_name, usage_count
		FROM emotes
		WHERE emote_name LIKE ?
		ORDER BY usage_count DESC
	`, "%"+substr+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search emotes: %w", err)
	}
	defer rows.Close()
	return scanEmotes(rows)
}

// SearchUsers lists mappings whose username or ID contains substr.
func (s *StatsStore) SearchUsers(ctx context.Context, substr string) ([]domain.UserMapping, error) {
	pattern := "%" + substr + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, username
		FROM users
		WHERE username LIKE ? OR user_id LIKE ?
		ORDER BY username
	`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var users []domain.UserMapping
	for rows.Next() {
		var u domain.UserMapping
		if err := rows.Scan(&u.UserID, &u.Username); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Username resolves one participant ID; empty when unmapped.
func (s *StatsStore) Username(ctx context.Context, userID string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `
		SELECT username FROM users WHERE user_id = ?
	`, userID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query username: %w", err)
	}
	return name, nil
}

// RawQuery executes an arbitrary SQL statement for the interactive console.
// NULLs render as "NULL"; all values are stringified.
func (s *StatsStore) RawQuery(ctx context.Context, query string) ([]string, [][]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		dests := make([]any, len(cols))
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func scanEmotes(rows *sql.Rows) ([]domain.EmoteStat, error) {
	var stats []domain.EmoteStat
	for rows.Next() {
		var st domain.EmoteStat
		if err := rows.Scan(&st.ID, &st.Name, &st.Uses); err != nil {
			return nil, fmt.Errorf("failed to scan emote stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
