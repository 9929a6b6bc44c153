package history

import (
	"encoding/json"
	"io/fs"

	"renamer/internal/errors"
	"renamer/internal/fsys"
	"renamer/pkg/types"

	"gopkg.in/yaml.v3"
)

// document is the on-disk layout of both file formats
type document struct {
	Entries []types.HistoryEntry `json:"entries" yaml:"entries"`
}

type codec struct {
	marshal   func(document) ([]byte, error)
	unmarshal func([]byte, *document) error
}

var jsonCodec = codec{
	marshal: func(d document) ([]byte, error) {
		return json.MarshalIndent(d, "", "  ")
	},
	unmarshal: func(data []byte, d *document) error {
		return json.Unmarshal(data, d)
	},
}

var yamlCodec = codec{
	marshal: func(d document) ([]byte, error) {
		return yaml.Marshal(d)
	},
	unmarshal: func(data []byte, d *document) error {
		return yaml.Unmarshal(data, d)
	},
}

// FileStorage persists history as a single JSON or YAML document
type FileStorage struct {
	fs    fsys.FS
	path  string
	codec codec
}

// NewJSONFile stores history at path as {"entries": [...]}
func NewJSONFile(fs fsys.FS, path string) *FileStorage {
	return &FileStorage{fs: fs, path: path, codec: jsonCodec}
}

// NewYAMLFile stores history at path as a YAML document with an entries list
func NewYAMLFile(fs fsys.FS, path string) *FileStorage {
	return &FileStorage{fs: fs, path: path, codec: yamlCodec}
}

// Path returns the file location
func (f *FileStorage) Path() string {
	return f.path
}

func (f *FileStorage) Load() ([]types.HistoryEntry, error) {
	data, err := f.fs.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewFileError("failed to read history", f.path, errors.FilesystemError, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var doc document
	if err := f.codec.unmarshal(data, &doc); err != nil {
		return nil, errors.NewFileError("failed to parse history", f.path, errors.FilesystemError, err)
	}
	return doc.Entries, nil
}

func (f *FileStorage) Save(entries []types.HistoryEntry) error {
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	data, err := f.codec.marshal(document{Entries: entries})
	if err != nil {
		return errors.Wrap(err, "failed to encode history")
	}
	if err := fsys.WriteFileAtomic(f.fs, f.path, data, 0644); err != nil {
		return errors.NewFileError("failed to write history", f.path, errors.FilesystemError, err)
	}
	return nil
}
