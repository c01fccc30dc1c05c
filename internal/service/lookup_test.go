package service

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/domain"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/repo"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/data"
)

func lookupFixture(t *testing.T) (*Lookup, *bytes.Buffer) {
	t.Helper()
	store, err := data.NewStatsStore(filepath.Join(t.TempDir(), "lookup.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	guild := &domain.Guild{ID: "g1", Name: "Gaming Hub"}
	err = store.InTx(ctx, func(w repo.StatsWriter) error {
		ch := &domain.Channel{Folder: "c1", ID: "1", Type: "GUILD_TEXT", Kind: domain.KindGuild, Name: "general", Guild: guild}
		if err := w.UpsertChannel(ctx, ch, 1500, 40, true); err != nil {
			return err
		}
		return w.IncrementEmote(ctx, "9", "pepelaugh", 30)
	})
	require.NoError(t, err)
	require.NoError(t, store.UpsertUserMapping(ctx, "U2", "Alice"))

	out := &bytes.Buffer{}
	return NewLookup(store, out), out
}

func TestLookupServers(t *testing.T) {
	l, out := lookupFixture(t)
	require.NoError(t, l.Servers(context.Background(), "gaming"))
	assert.Contains(t, out.String(), "#general: 1,500 messages")
	assert.Contains(t, out.String(), "TOTAL: 1,500 messages")
}

func TestLookupServersNoMatch(t *testing.T) {
	l, out := lookupFixture(t)
	require.NoError(t, l.Servers(context.Background(), "nope"))
	assert.Contains(t, out.String(), `No servers found matching "nope"`)
}

func TestLookupEmotes(t *testing.T) {
	l, out := lookupFixture(t)
	require.NoError(t, l.Emotes(context.Background(), "pepe"))
	assert.Contains(t, out.String(), ":pepelaugh: - 30 uses")
}

func TestLookupUsers(t *testing.T) {
	l, out := lookupFixture(t)
	require.NoError(t, l.Users(context.Background(), "ali"))
	assert.Contains(t, out.String(), "Alice (ID: U2)")
}

func TestLookupConsole(t *testing.T) {
	l, out := lookupFixture(t)
	in := strings.NewReader(
		"SELECT channel_name FROM channels\n" +
			"SELECT nope FROM nope\n" +
			"exit\n")
	require.NoError(t, l.Console(context.Background(), in))

	assert.Contains(t, out.String(), "general")
	assert.Contains(t, out.String(), "(1 rows)")
	assert.Contains(t, out.String(), "Error:")
}
