package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmotes_Basic(t *testing.T) {
	refs := ExtractEmotes("hello <:wave:9> world")
	assert.Equal(t, []EmoteRef{{Name: "wave", ID: "9"}}, refs)
}

func TestExtractEmotes_Animated(t *testing.T) {
	refs := ExtractEmotes("<a:party:123456789>")
	assert.Equal(t, []EmoteRef{{Name: "party", ID: "123456789"}}, refs)
}

func TestExtractEmotes_Multiple(t *testing.T) {
	refs := ExtractEmotes("<:a:1> text <:b:2> <:a:1>")
	assert.Equal(t, []EmoteRef{
		{Name: "a", ID: "1"},
		{Name: "b", ID: "2"},
		{Name: "a", ID: "1"},
	}, refs)
}

func TestExtractEmotes_Empty(t *testing.T) {
	assert.Nil(t, ExtractEmotes(""))
	assert.Nil(t, ExtractEmotes("no emotes here"))
	assert.Nil(t, ExtractEmotes("<:missing_id:>"))
	assert.Nil(t, ExtractEmotes("<notanemote:123>"))
}

func TestExtractFileTypes_QueryStringAndCase(t *testing.T) {
	exts := ExtractFileTypes("http://x/a.PNG?x=1,http://y/b.jpg")
	assert.Equal(t, []string{"png", "jpg"}, exts)
}

func TestExtractFileTypes_NewlineSeparated(t *testing.T) {
	exts := ExtractFileTypes("http://x/a.gif\nhttp://y/b.mp4")
	assert.Equal(t, []string{"gif", "mp4"}, exts)
}

func TestExtractFileTypes_FinalRunOnly(t *testing.T) {
	exts := ExtractFileTypes("http://cdn.example.com/v1.2/archive.tar.gz")
	assert.Equal(t, []string{"gz"}, exts)
}

func TestExtractFileTypes_SkipsUnmatchedSegments(t *testing.T) {
	exts := ExtractFileTypes("http://x/noextension, ,http://y/c.webp")
	assert.Equal(t, []string{"webp"}, exts)
}

func TestExtractFileTypes_Empty(t *testing.T) {
	assert.Nil(t, ExtractFileTypes(""))
	assert.Nil(t, ExtractFileTypes(" , \n "))
}
