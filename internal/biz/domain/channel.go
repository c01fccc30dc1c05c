package domain

// ChannelKind classifies a conversation, derived once when the descriptor
// is parsed.
type ChannelKind string

const (
	KindDM      ChannelKind = "DM"
	KindGroupDM ChannelKind = "GROUP_DM"
	KindGuild   ChannelKind = "GUILD"
	KindUnknown ChannelKind = "UNKNOWN"
)

// KindFromType maps a raw descriptor type to a ChannelKind. Anything that is
// not a direct or group DM is treated as a guild channel.
func KindFromType(rawType string) ChannelKind {
	switch rawType {
	case "DM":
		return KindDM
	case "GROUP_DM":
		return KindGroupDM
	case "":
		return KindUnknown
	default:
		return KindGuild
	}
}

// Guild identifies the server that owns a guild channel.
type Guild struct {
	ID   string
	Name string
}

// Channel represents one conversation folder's descriptor. Guild and
// Recipients are mutually exclusive: guild channels carry Guild, direct and
// group DMs carry Recipients (sorted, so equal membership produces equal
// keys).
type Channel struct {
	Folder     string // export folder name, primary key
	ID         string
	Type       string // raw descriptor type, persisted as-is
	Kind       ChannelKind
	Name       string
	Guild      *Guild
	Recipients []string
}

// IsDirect reports whether the channel is a DM or group DM.
func (c *Channel) IsDirect() bool {
	return c.Kind == KindDM || c.Kind == KindGroupDM
}
