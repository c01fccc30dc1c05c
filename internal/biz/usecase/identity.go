package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/domain"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/repo"
)

const dmLabelPrefix = "Direct Message with "

// UsernameFromLabel extracts a display name from a DM label of the form
// "Direct Message with <name>#0". Labels without the prefix yield an empty
// string; the trailing #0 is a legacy discriminator remnant and is stripped.
func UsernameFromLabel(label string) string {
	if !strings.HasPrefix(label, dmLabelPrefix) {
		return ""
	}
	name := strings.TrimPrefix(label, dmLabelPrefix)
	name = strings.TrimSuffix(name, "#0")
	return name
}

// IdentityResolver maps participant IDs to display names using the export's
// label index. This is best-effort enrichment: any lookup failure is skipped
// silently.
type IdentityResolver struct {
	stats  repo.StatsRepo
	index  map[string]string // channel ID -> free-text label
	selfID string
	log    zerolog.Logger
}

// NewIdentityResolver creates a resolver over a label index.
func NewIdentityResolver(stats repo.StatsRepo, index map[string]string, selfID string, log zerolog.Logger) *IdentityResolver {
	return &IdentityResolver{
		stats:  stats,
		index:  index,
		selfID: selfID,
		log:    log,
	}
}

// Resolve attempts to attribute a display name to the non-self participant
// of a DM. Group DM labels carry no reliable per-member data, so group
// participants are left unmapped.
func (r *IdentityResolver) Resolve(ctx context.Context, ch *domain.Channel) error {
	if ch.Kind != domain.KindDM {
		return nil
	}
	label, ok := r.index[ch.ID]
	if !ok {
		return nil
	}
	username := UsernameFromLabel(label)
	if username == "" {
		return nil
	}

	var otherID string
	for _, id := range ch.Recipients {
		if id != r.selfID {
			otherID = id
			break
		}
	}
	if otherID == "" {
		return nil
	}

	if err := r.stats.UpsertUserMapping(ctx, otherID, username); err != nil {
		return err
	}
	r.log.Debug().Str("user_id", otherID).Str("username", username).Msg("mapped DM participant")
	return nil
}
