package userfile

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"miku-chat-be/internal/entity"
)

// Reader serves user preference records from a single users.json file. The
// file is read lazily and re-read when its mtime changes; it is small and
// edited by hand, not by this backend.
type Reader struct {
	path string

	mu      sync.Mutex
	loaded  bool
	modTime int64
	users   map[string]entity.User
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Find returns the record for username, or false when the file has no entry.
// A missing or unreadable file is treated as an empty user list.
func (r *Reader) Find(username string) (entity.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refresh()
	u, ok := r.users[username]
	return u, ok
}

func (r *Reader) refresh() {
	info, err := os.Stat(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.users = map[string]entity.User{}
			r.loaded = true
		}
		return
	}
	if r.loaded && info.ModTime().UnixNano() == r.modTime {
		return
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return
	}

	var list []entity.User
	if err := json.Unmarshal(data, &list); err != nil {
		return
	}

	users := make(map[string]entity.User, len(list))
	for _, u := range list {
		if u.Username != "" {
			users[u.Username] = u
		}
	}
	r.users = users
	r.loaded = true
	r.modTime = info.ModTime().UnixNano()
}
