package codec

import (
	"strings"
	"sync"
)

// Registry manages the available codecs
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec // key can be either name or extension
}

var defaultRegistry = NewRegistry()

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register registers a codec using both its name and extension
func Register(codec Codec) {
	defaultRegistry.Register(codec)
}

// Get retrieves a codec by name or extension
func Get(nameOrExt string) (Codec, error) {
	return defaultRegistry.Get(nameOrExt)
}

// ForPath retrieves the codec registered for the extension of path
func ForPath(path string) (Codec, error) {
	return defaultRegistry.ForPath(path)
}

// List returns all registered codecs
func List() []Codec {
	return defaultRegistry.List()
}

// Register registers a codec using both its name and extension.
// Extensions are matched case-insensitively.
func (r *Registry) Register(codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[codec.Name()] = codec
	r.codecs[strings.ToLower(codec.Extension())] = codec
}

// Get retrieves a codec by name or extension
func (r *Registry) Get(nameOrExt string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if codec, ok := r.codecs[nameOrExt]; ok {
		return codec, nil
	}
	if strings.HasPrefix(nameOrExt, ".") {
		if codec, ok := r.codecs[strings.ToLower(nameOrExt)]; ok {
			return codec, nil
		}
	}
	return nil, ErrCodecNotFound
}

// ForPath retrieves the codec registered for the extension of path
func (r *Registry) ForPath(path string) (Codec, error) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 || strings.ContainsAny(path[i:], `/\`) {
		return nil, ErrCodecNotFound
	}
	return r.Get(path[i:])
}

// List returns all registered codecs (deduplicated)
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Codec]bool)
	codecs := make([]Codec, 0)

	for _, codec := range r.codecs {
		if !seen[codec] {
			seen[codec] = true
			codecs = append(codecs, codec)
		}
	}

	return codecs
}
