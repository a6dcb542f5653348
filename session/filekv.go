package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileKV is a KeyValue store persisted as a single JSON file. It stands in
// for the browser's localStorage: small, single-writer, survives restarts.
// Every write rewrites the whole file via a temp-file rename so readers never
// observe a torn file.
type FileKV struct {
	path   string
	values map[string]string
	lock   sync.RWMutex
}

var _ KeyValue = (*FileKV)(nil)

// OpenFileKV loads (or creates) the store at path.
func OpenFileKV(path string) (*FileKV, error) {
	kv := &FileKV{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return kv, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[OpenFileKV] read")
	}
	if len(data) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(data, &kv.values); err != nil {
		return nil, errors.Wrap(err, "[OpenFileKV] unmarshal")
	}
	return kv, nil
}

func (kv *FileKV) Get(key string) (string, bool) {
	kv.lock.RLock()
	defer kv.lock.RUnlock()

	v, ok := kv.values[key]
	return v, ok
}

func (kv *FileKV) Set(key, value string) error {
	kv.lock.Lock()
	defer kv.lock.Unlock()

	kv.values[key] = value
	return kv.flush()
}

func (kv *FileKV) Delete(key string) error {
	kv.lock.Lock()
	defer kv.lock.Unlock()

	if _, ok := kv.values[key]; !ok {
		return nil
	}
	delete(kv.values, key)
	return kv.flush()
}

func (kv *FileKV) flush() error {
	if err := os.MkdirAll(filepath.Dir(kv.path), 0o700); err != nil {
		return errors.Wrap(err, "[FileKV.flush] mkdir")
	}
	data, err := json.MarshalIndent(kv.values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileKV.flush] marshal")
	}
	tmp := kv.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileKV.flush] write")
	}
	if err := os.Rename(tmp, kv.path); err != nil {
		return errors.Wrap(err, "[FileKV.flush] rename")
	}
	return nil
}
