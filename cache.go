package attmon

import "path"

// Attribute is one entry of a GATT attribute database.
type Attribute struct {
	Handle uint16
	Type   UUID
	Value  []byte
}

// GattCache persists attribute databases keyed by a slash-separated path.
type GattCache interface {
	Store(path string, attrs []Attribute, replace bool) error
	Load(path string) ([]Attribute, error)
	Clear(path string) error
}

// LocalAttributesPath is where the database served by the local adapter
// lives.
func LocalAttributesPath(local Addr) string {
	return path.Join(local.String(), "attributes")
}

// PeerCachePath is where the local adapter keeps its copy of a peer's
// database.
func PeerCachePath(local, peer Addr) string {
	return path.Join(local.String(), "cache", peer.String())
}
