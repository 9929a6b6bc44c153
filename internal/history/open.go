package history

import (
	"fmt"
	"io"

	"renamer/internal/fsys"
)

// Backend names accepted by Open
const (
	BackendJSON   = "json"
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists every supported backend name
var Backends = []string{BackendJSON, BackendYAML, BackendSQLite, BackendMemory}

// Open returns the Storage for backend at path. The returned closer must be
// called when the storage is no longer needed.
func Open(backend, path string) (Storage, io.Closer, error) {
	switch backend {
	case BackendJSON, "":
		return NewJSONFile(fsys.NewOS(), path), nopCloser{}, nil
	case BackendYAML:
		return NewYAMLFile(fsys.NewOS(), path), nopCloser{}, nil
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case BackendMemory:
		return NewMemoryStorage(), nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("unknown history backend %q", backend)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
