package domain

// Summary holds the run-level totals reported after aggregation.
type Summary struct {
	TotalMessages      int64
	AttachmentMessages int64
	DistinctEmotes     int
	Servers            int
	DMs                int
	GroupDMs           int
	MappedUsers        int
}

// ServerStat is one server's rollup across all its channels.
type ServerStat struct {
	ID                 string
	Name               string
	Messages           int64
	AttachmentMessages int64
}

// ChannelStat is one channel's counts, used by server lookups.
type ChannelStat struct {
	Name               string
	Messages           int64
	AttachmentMessages int64
}

// EmoteStat is one emote's usage entry.
type EmoteStat struct {
	ID   string
	Name string
	Uses int64
}

// FileTypeStat is one attachment extension's count.
type FileTypeStat struct {
	Extension string
	Count     int64
}

// DirectStat is one DM or group DM rollup keyed by its recipient set.
type DirectStat struct {
	Recipients         []string
	Messages           int64
	AttachmentMessages int64
}

// UserMapping is a resolved participant identity.
type UserMapping struct {
	UserID   string
	Username string
}
