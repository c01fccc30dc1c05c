package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromType(t *testing.T) {
	assert.Equal(t, KindDM, KindFromType("DM"))
	assert.Equal(t, KindGroupDM, KindFromType("GROUP_DM"))
	assert.Equal(t, KindGuild, KindFromType("GUILD_TEXT"))
	assert.Equal(t, KindGuild, KindFromType("GUILD_VOICE"))
	assert.Equal(t, KindUnknown, KindFromType(""))
}

func TestChannel_IsDirect(t *testing.T) {
	assert.True(t, (&Channel{Kind: KindDM}).IsDirect())
	assert.True(t, (&Channel{Kind: KindGroupDM}).IsDirect())
	assert.False(t, (&Channel{Kind: KindGuild}).IsDirect())
	assert.False(t, (&Channel{Kind: KindUnknown}).IsDirect())
}
