package cache

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rigado/attmon"
)

type record struct {
	Handle uint16 `json:"handle"`
	UUID   string `json:"uuid"`
	Value  string `json:"value,omitempty"`
}

type gattCache struct {
	dir  string
	lock sync.RWMutex
}

// New returns a GattCache keeping one JSON document per database path
// below dir.
func New(dir string) attmon.GattCache {
	return &gattCache{dir: dir}
}

func (gc *gattCache) filename(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	if clean == "/" || strings.Contains(path, "..") {
		return "", errors.Errorf("invalid gatt db path %q", path)
	}
	return filepath.Join(gc.dir, clean), nil
}

func (gc *gattCache) Store(path string, attrs []attmon.Attribute, replace bool) error {
	gc.lock.Lock()
	defer gc.lock.Unlock()

	fn, err := gc.filename(path)
	if err != nil {
		return err
	}

	if _, err := os.Stat(fn); err == nil && !replace {
		return errors.Errorf("cache already contains gatt db for %s", path)
	}

	recs := make([]record, 0, len(attrs))
	for _, a := range attrs {
		recs = append(recs, record{
			Handle: a.Handle,
			UUID:   a.Type.String(),
			Value:  hex.EncodeToString(a.Value),
		})
	}

	out, err := jsoniter.Marshal(recs)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
		return errors.Wrap(err, "can't create cache directory")
	}
	return ioutil.WriteFile(fn, out, 0644)
}

func (gc *gattCache) Load(path string) ([]attmon.Attribute, error) {
	gc.lock.RLock()
	defer gc.lock.RUnlock()

	fn, err := gc.filename(path)
	if err != nil {
		return nil, err
	}

	in, err := ioutil.ReadFile(fn)
	if os.IsNotExist(err) {
		return nil, errors.Errorf("gatt db for %s not found in cache", path)
	}
	if err != nil {
		return nil, err
	}

	var recs []record
	if err := jsoniter.Unmarshal(in, &recs); err != nil {
		return nil, errors.Wrapf(err, "corrupt gatt db %s", path)
	}

	attrs := make([]attmon.Attribute, 0, len(recs))
	for _, r := range recs {
		u, err := attmon.Parse(r.UUID)
		if err != nil {
			return nil, errors.Wrapf(err, "handle 0x%04x", r.Handle)
		}
		var v []byte
		if r.Value != "" {
			if v, err = hex.DecodeString(r.Value); err != nil {
				return nil, errors.Wrapf(err, "handle 0x%04x", r.Handle)
			}
		}
		attrs = append(attrs, attmon.Attribute{Handle: r.Handle, Type: u, Value: v})
	}

	return attrs, nil
}

func (gc *gattCache) Clear(path string) error {
	gc.lock.Lock()
	defer gc.lock.Unlock()

	fn, err := gc.filename(path)
	if err != nil {
		return err
	}
	return os.Remove(fn)
}
