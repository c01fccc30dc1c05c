package data

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/domain"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/repo"
)

const (
	channelFile  = "channel.json"
	messagesFile = "messages.json"
	indexFile    = "index.json"
)

var _ repo.ExportRepo = (*ExportReader)(nil)

// ExportReader reads a data export's directory tree: one folder per
// conversation, each holding a descriptor and a message list, plus an
// optional sibling label index.
type ExportReader struct {
	dir string
}

// NewExportReader creates a reader rooted at the export's messages directory.
func NewExportReader(dir string) *ExportReader {
	return &ExportReader{dir: dir}
}

// flexID accepts either a JSON number or a JSON string, since exports encode
// identities inconsistently across versions.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	*f = flexID(strings.Trim(string(b), `"`))
	return nil
}

type guildDoc struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
}

type channelDoc struct {
	ID         flexID    `json:"id"`
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Guild      *guildDoc `json:"guild"`
	Recipients []string  `json:"recipients"`
}

type messageDoc struct {
	ID          flexID `json:"ID"`
	Timestamp   string `json:"Timestamp"`
	Contents    string `json:"Contents"`
	Attachments string `json:"Attachments"`
}

// Folders lists conversation folder names matching the export's naming
// convention, in directory-listing order.
func (e *ExportReader) Folders() ([]string, error) {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read export directory: %w", err)
	}
	var folders []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), "c") {
			folders = append(folders, entry.Name())
		}
	}
	return folders, nil
}

// Channel loads and parses one folder's descriptor into the kind-tagged
// domain form. Recipient sets are sorted here so equal membership always
// produces equal keys downstream.
func (e *ExportReader) Channel(folder string) (*domain.Channel, error) {
	raw, err := e.readFile(folder, channelFile)
	if err != nil {
		return nil, err
	}
	var doc channelDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s/%s: %w", folder, channelFile, err)
	}

	ch := &domain.Channel{
		Folder: folder,
		ID:     string(doc.ID),
		Type:   doc.Type,
		Kind:   domain.KindFromType(doc.Type),
		Name:   doc.Name,
	}
	if ch.IsDirect() {
		ch.Recipients = append([]string(nil), doc.Recipients...)
		sort.Strings(ch.Recipients)
	} else if doc.Guild != nil {
		ch.Guild = &domain.Guild{ID: string(doc.Guild.ID), Name: doc.Guild.Name}
	}
	return ch, nil
}

// Messages loads one folder's message list, newest-first as exported.
func (e *ExportReader) Messages(folder string) ([]domain.Message, error) {
	raw, err := e.readFile(folder, messagesFile)
	if err != nil {
		return nil, err
	}
	var docs []messageDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse %s/%s: %w", folder, messagesFile, err)
	}

	msgs := make([]domain.Message, len(docs))
	for i, d := range docs {
		msgs[i] = domain.Message{
			ID:          string(d.ID),
			Timestamp:   d.Timestamp,
			Contents:    d.Contents,
			Attachments: d.Attachments,
		}
	}
	return msgs, nil
}

// Index loads the conversation label index. A missing file yields an empty
// map: identity resolution is enrichment, not required data.
func (e *ExportReader) Index() (map[string]string, error) {
	raw, err := os.ReadFile(filepath.Join(e.dir, indexFile))
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", indexFile, err)
	}
	index := make(map[string]string)
	if err := json.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", indexFile, err)
	}
	return index, nil
}

func (e *ExportReader) readFile(folder, name string) ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(e.dir, folder, name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrMissingExportFile, folder, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", folder, name, err)
	}
	return raw, nil
}
