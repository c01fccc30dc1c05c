package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/domain"
	"github.com/StoiaCode/DiscordDeCuckRecap/internal/biz/repo"
)

// fakeStore is an in-memory StatsRepo/StatsWriter recording every increment
// call, so tests can assert both final state and call granularity.
type fakeStore struct {
	processed map[string]bool
	channels  map[string]fakeChannelRow
	emotes    map[string]int
	emoteName map[string]string
	exts      map[string]int
	messages  map[string]domain.MessageRecord
	users     map[string]string

	emoteCalls []emoteCall

	txErr          error // returned by InTx before fn runs
	userMappingErr error
}

type fakeChannelRow struct {
	msgCount    int
	attachCount int
	processed   bool
}

type emoteCall struct {
	id    string
	name  string
	delta int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		processed: make(map[string]bool),
		channels:  make(map[string]fakeChannelRow),
		emotes:    make(map[string]int),
		emoteName: make(map[string]string),
		exts:      make(map[string]int),
		messages:  make(map[string]domain.MessageRecord),
		users:     make(map[string]string),
	}
}

func (f *fakeStore) IsChannelProcessed(_ context.Context, folder string) (bool, error) {
	return f.processed[folder], nil
}

func (f *fakeStore) UpsertUserMapping(_ context.Context, userID, username string) error {
	if f.userMappingErr != nil {
		return f.userMappingErr
	}
	if userID == "" || username == "" {
		return nil
	}
	f.users[userID] = username
	return nil
}

func (f *fakeStore) InTx(_ context.Context, fn func(repo.StatsWriter) error) error {
	if f.txErr != nil {
		return f.txErr
	}
	return fn(f)
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) UpsertChannel(_ context.Context, ch *domain.Channel, msgCount, attachCount int, processed bool) error {
	f.channels[ch.Folder] = fakeChannelRow{msgCount: msgCount, attachCount: attachCount, processed: processed}
	f.processed[ch.Folder] = processed
	return nil
}

func (f *fakeStore) IncrementEmote(_ context.Context, emoteID, name string, delta int) error {
	f.emoteCalls = append(f.emoteCalls, emoteCall{id: emoteID, name: name, delta: delta})
	f.emotes[emoteID] += delta
	f.emoteName[emoteID] = name
	return nil
}

func (f *fakeStore) IncrementFileType(_ context.Context, ext string, delta int) error {
	f.exts[ext] += delta
	return nil
}

func (f *fakeStore) InsertMessageIfAbsent(_ context.Context, rec *domain.MessageRecord) error {
	if _, ok := f.messages[rec.ID]; ok {
		return nil
	}
	f.messages[rec.ID] = *rec
	return nil
}

// fakeExport serves fixture folders from memory.
type fakeExport struct {
	channels map[string]*domain.Channel
	messages map[string][]domain.Message
	index    map[string]string
}

func newFakeExport() *fakeExport {
	return &fakeExport{
		channels: make(map[string]*domain.Channel),
		messages: make(map[string][]domain.Message),
		index:    make(map[string]string),
	}
}

func (f *fakeExport) add(ch *domain.Channel, msgs []domain.Message) {
	f.channels[ch.Folder] = ch
	f.messages[ch.Folder] = msgs
}

func (f *fakeExport) Folders() ([]string, error) {
	var folders []string
	for folder := range f.channels {
		folders = append(folders, folder)
	}
	for folder := range f.messages {
		if _, ok := f.channels[folder]; !ok {
			folders = append(folders, folder)
		}
	}
	return folders, nil
}

func (f *fakeExport) Channel(folder string) (*domain.Channel, error) {
	ch, ok := f.channels[folder]
	if !ok {
		return nil, fmt.Errorf("%w: %s/channel.json", domain.ErrMissingExportFile, folder)
	}
	return ch, nil
}

func (f *fakeExport) Messages(folder string) ([]domain.Message, error) {
	msgs, ok := f.messages[folder]
	if !ok {
		return nil, fmt.Errorf("%w: %s/messages.json", domain.ErrMissingExportFile, folder)
	}
	return msgs, nil
}

func (f *fakeExport) Index() (map[string]string, error) {
	return f.index, nil
}

var errBoom = errors.New("boom")
