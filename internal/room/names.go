package room

import (
	"strings"
	"sync"
	"unicode/utf8"

	"gobang-server/internal/protocol"
)

const MaxNameRunes = 32

// NameTable is the set of display names held by connected clients.
type NameTable struct {
	mu    sync.Mutex
	names map[string]struct{}
}

func NewNameTable() *NameTable {
	return &NameTable{names: map[string]struct{}{}}
}

// NormalizeName trims name and checks it can travel in a protocol field.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, protocol.Delimiter) || strings.ContainsAny(name, "\r\n") {
		return "", ErrInvalidName
	}
	if utf8.RuneCountInString(name) > MaxNameRunes {
		return "", ErrInvalidName
	}
	if name == protocol.SystemName || name == protocol.EmptySeat {
		return "", ErrInvalidName
	}
	return name, nil
}

// Register claims name. It returns the normalized name.
func (t *NameTable) Register(name string) (string, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return "", err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, taken := t.names[name]; taken {
		return "", ErrNameTaken
	}
	t.names[name] = struct{}{}
	metricPlayersOnline.Set(int64(len(t.names)))
	return name, nil
}

func (t *NameTable) Release(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.names, name)
	metricPlayersOnline.Set(int64(len(t.names)))
}

func (t *NameTable) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.names)
}
