package repo

import "github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/domain"

// ExportRepo reads the on-disk data export. All reads are local and bounded
// by export size.
type ExportRepo interface {
	// Folders lists candidate conversation folder names in directory-listing
	// order. No ordering is guaranteed or relied upon.
	Folders() ([]string, error)

	// Channel loads and parses one folder's descriptor. Returns
	// domain.ErrMissingExportFile when the descriptor is absent.
	Channel(folder string) (*domain.Channel, error)

	// Messages loads one folder's message list, newest-first as exported.
	// Returns domain.ErrMissingExportFile when the list is absent.
	Messages(folder string) ([]domain.Message, error)

	// Index loads the conversation label index used for identity resolution.
	// A missing index file yields an empty map, not an error: the index is
	// enrichment, not required data.
	Index() (map[string]string, error)
}
