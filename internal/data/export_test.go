package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/domain"
)

func writeExportFile(t *testing.T, dir, folder, name, content string) {
	t.Helper()
	path := filepath.Join(dir, folder, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestExportReader_FoldersFiltersByConvention(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "c100"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "c200"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "attachments"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c999"), []byte("a plain file"), 0644))

	folders, err := NewExportReader(dir).Folders()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c100", "c200"}, folders)
}

func TestExportReader_ChannelGuild(t *testing.T) {
	dir := t.TempDir()
	writeExportFile(t, dir, "c100", "channel.json", `{
		"id": 123456789012345678,
		"type": "GUILD_TEXT",
		"name": "general",
		"guild": {"id": 987654321098765432, "name": "Test Server"}
	}`)

	ch, err := NewExportReader(dir).Channel("c100")
	require.NoError(t, err)
	assert.Equal(t, "c100", ch.Folder)
	assert.Equal(t, "123456789012345678", ch.ID)
	assert.Equal(t, domain.KindGuild, ch.Kind)
	assert.Equal(t, "general", ch.Name)
	require.NotNil(t, ch.Guild)
	assert.Equal(t, "987654321098765432", ch.Guild.ID)
	assert.Equal(t, "Test Server", ch.Guild.Name)
	assert.Nil(t, ch.Recipients)
}

func TestExportReader_ChannelDMRecipientsSorted(t *testing.T) {
	dir := t.TempDir()
	writeExportFile(t, dir, "c100", "channel.json", `{
		"id": "555",
		"type": "DM",
		"recipients": ["U9", "U1"]
	}`)

	ch, err := NewExportReader(dir).Channel("c100")
	require.NoError(t, err)
	assert.Equal(t, domain.KindDM, ch.Kind)
	assert.Equal(t, []string{"U1", "U9"}, ch.Recipients, "recipient sets are canonicalized at parse time")
	assert.Nil(t, ch.Guild)
}

func TestExportReader_ChannelMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "c100"), 0755))

	_, err := NewExportReader(dir).Channel("c100")
	assert.ErrorIs(t, err, domain.ErrMissingExportFile)
}

func TestExportReader_ChannelMalformed(t *testing.T) {
	dir := t.TempDir()
	writeExportFile(t, dir, "c100", "channel.json", `{broken`)

	_, err := NewExportReader(dir).Channel("c100")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrMissingExportFile)
}

func TestExportReader_Messages(t *testing.T) {
	dir := t.TempDir()
	writeExportFile(t, dir, "c100", "messages.json", `[
		{"ID": 111, "Timestamp": "2025-03-01 10:00:00", "Contents": "<:wave:9>", "Attachments": ""},
		{"ID": "222", "Timestamp": "2024-12-31 23:59:59", "Contents": "", "Attachments": "http://x/a.png"}
	]`)

	msgs, err := NewExportReader(dir).Messages("c100")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "111", msgs[0].ID, "numeric IDs decode to strings")
	assert.Equal(t, "222", msgs[1].ID)
	assert.Equal(t, "2025-03-01 10:00:00", msgs[0].Timestamp)
	assert.Equal(t, "<:wave:9>", msgs[0].Contents)
	assert.Equal(t, "http://x/a.png", msgs[1].Attachments)
}

func TestExportReader_MessagesMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "c100"), 0755))

	_, err := NewExportReader(dir).Messages("c100")
	assert.ErrorIs(t, err, domain.ErrMissingExportFile)
}

func TestExportReader_IndexAbsentIsEmpty(t *testing.T) {
	index, err := NewExportReader(t.TempDir()).Index()
	require.NoError(t, err)
	assert.Empty(t, index)
}

func TestExportReader_Index(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.json"),
		[]byte(`{"555": "Direct Message with Alice#0"}`), 0644))

	index, err := NewExportReader(dir).Index()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"555": "Direct Message with Alice#0"}, index)
}
