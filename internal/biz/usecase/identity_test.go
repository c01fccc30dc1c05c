package usecase

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/domain"
)

func TestUsernameFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Direct Message with Alice#0", "Alice"},
		{"Direct Message with Bob", "Bob"},
		{"Direct Message with name#0tag#0", "name#0tag"},
		{"Alice and friends", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UsernameFromLabel(tt.label), "label %q", tt.label)
	}
}

func TestResolve_MapsOtherParticipant(t *testing.T) {
	store := newFakeStore()
	ch := dmChannel("c1", "U1", "U2")
	r := NewIdentityResolver(store, map[string]string{ch.ID: "Direct Message with Alice#0"}, "U1", zerolog.Nop())

	require.NoError(t, r.Resolve(context.Background(), ch))
	assert.Equal(t, "Alice", store.users["U2"])
	assert.NotContains(t, store.users, "U1")
}

func TestResolve_GroupDMLeftUnmapped(t *testing.T) {
	store := newFakeStore()
	ch := &domain.Channel{
		Folder:     "c1",
		ID:         "gdm1",
		Type:       "GROUP_DM",
		Kind:       domain.KindGroupDM,
		Recipients: []string{"U1", "U2", "U3"},
	}
	r := NewIdentityResolver(store, map[string]string{"gdm1": "some group"}, "U1", zerolog.Nop())

	require.NoError(t, r.Resolve(context.Background(), ch))
	assert.Empty(t, store.users)
}

func TestResolve_MissingIndexEntrySkipped(t *testing.T) {
	store := newFakeStore()
	ch := dmChannel("c1", "U1", "U2")
	r := NewIdentityResolver(store, map[string]string{}, "U1", zerolog.Nop())

	require.NoError(t, r.Resolve(context.Background(), ch))
	assert.Empty(t, store.users)
}

func TestResolve_UnexpectedLabelSkipped(t *testing.T) {
	store := newFakeStore()
	ch := dmChannel("c1", "U1", "U2")
	r := NewIdentityResolver(store, map[string]string{ch.ID: "Group chat with Alice"}, "U1", zerolog.Nop())

	require.NoError(t, r.Resolve(context.Background(), ch))
	assert.Empty(t, store.users)
}

func TestResolve_SelfOnlyRecipientsSkipped(t *testing.T) {
	store := newFakeStore()
	ch := dmChannel("c1", "U1")
	r := NewIdentityResolver(store, map[string]string{ch.ID: "Direct Message with Me#0"}, "U1", zerolog.Nop())

	require.NoError(t, r.Resolve(context.Background(), ch))
	assert.Empty(t, store.users)
}
