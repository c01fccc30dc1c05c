package usecase

import (
	"regexp"
	"strings"
)

var (
	// emotePattern matches <:name:id> and the animated variant <a:name:id>.
	// The digits form the stable emote identity.
	emotePattern = regexp.MustCompile(`<a?:([^:]+):(\d+)>`)

	// extensionPattern matches the final dot-delimited alphanumeric run of a
	// URL, directly before a query string or end of string.
	extensionPattern = regexp.MustCompile(`\.([a-zA-Z0-9]+)(?:\?|$)`)
)

// EmoteRef is one emote occurrence found in message text.
type EmoteRef struct {
	Name string
	ID   string
}

// ExtractEmotes returns all emote references in content, first to last.
// Empty content yields nil.
func ExtractEmotes(content string) []EmoteRef {
	if content == "" {
		return nil
	}
	matches := emotePattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]EmoteRef, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, EmoteRef{Name: m[1], ID: m[2]})
	}
	return refs
}

// ExtractFileTypes returns the lower-cased file extensions found in a raw
// attachment-reference string. Multiple URLs may be joined by commas or
// newlines; segments without a recognizable extension contribute nothing.
func ExtractFileTypes(attachments string) []string {
	if attachments == "" {
		return nil
	}
	urls := strings.Split(strings.ReplaceAll(attachments, ",", "\n"), "\n")
	var exts []string
	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if m := extensionPattern.FindStringSubmatch(url); m != nil {
			exts = append(exts, strings.ToLower(m[1]))
		}
	}
	return exts
}
