// Package inbox hands file selections from a second renamer process to the
// running one. Senders drop JSON messages into a directory; the running
// instance watches that directory with fsnotify.
package inbox

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"renamer/internal/errors"
	"renamer/internal/fsys"
	"renamer/internal/log"

	"github.com/google/uuid"
)

const messageExt = ".json"

// Message is one forwarded selection
type Message struct {
	ID     string    `json:"id"`
	Paths  []string  `json:"paths"`
	SentAt time.Time `json:"sent_at"`
}

// Send writes paths into dir as a new message. The file appears atomically,
// so a watcher never reads a partial message.
func Send(dir string, paths []string) (Message, error) {
	msg := Message{
		ID:     uuid.NewString(),
		Paths:  paths,
		SentAt: time.Now().UTC(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return Message{}, errors.Wrap(err, "failed to encode message")
	}
	path := filepath.Join(dir, msg.ID+messageExt)
	if err := fsys.WriteFileAtomic(fsys.NewOS(), path, data, 0600); err != nil {
		return Message{}, errors.NewFileError("failed to write message", path, errors.FilesystemError, err)
	}
	log.LogWithFields(log.F("id", msg.ID), log.F("files", len(paths))).Debug("selection sent")
	return msg, nil
}

func isMessage(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, messageExt) && !strings.HasPrefix(name, ".")
}
