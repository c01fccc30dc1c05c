package domain

// ChannelResult accumulates one channel's target-year scan. It is transient:
// built per channel, flushed to the store in a single transaction, then
// discarded.
type ChannelResult struct {
	Channel            *Channel
	MessageCount       int
	AttachmentMessages int
	EmoteCounts        map[string]int    // emote ID -> occurrences
	EmoteNames         map[string]string // emote ID -> latest-seen display name
	ExtCounts          map[string]int    // lower-cased extension -> occurrences
	Messages           []MessageRecord   // only populated when detail storage is on
	TimestampErrors    int               // in-scan messages skipped for bad timestamps
}

// NewChannelResult creates an empty result for a channel.
func NewChannelResult(ch *Channel) *ChannelResult {
	return &ChannelResult{
		Channel:     ch,
		EmoteCounts: make(map[string]int),
		EmoteNames:  make(map[string]string),
		ExtCounts:   make(map[string]int),
	}
}

// MessageRecord is the optional per-message detail row.
type MessageRecord struct {
	ID             string
	Folder         string
	Timestamp      string
	Year           int
	Month          int
	Day            int
	HasContent     bool
	HasAttachments bool
}
