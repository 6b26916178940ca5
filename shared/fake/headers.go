package fake

import "strings"

// HeaderMap is an ordered header map with case-insensitive keys, as the host keeps them.
type HeaderMap struct {
	Pairs [][2]string
}

func NewHeaderMap(pairs [][2]string) *HeaderMap {
	return &HeaderMap{Pairs: append([][2]string(nil), pairs...)}
}

func (m *HeaderMap) Get(key string) []string {
	var values []string
	for _, kv := range m.Pairs {
		if strings.EqualFold(kv[0], key) {
			values = append(values, kv[1])
		}
	}
	return values
}

func (m *HeaderMap) GetOne(key string) (string, bool) {
	for _, kv := range m.Pairs {
		if strings.EqualFold(kv[0], key) {
			return kv[1], true
		}
	}
	return "", false
}

func (m *HeaderMap) GetAll() [][2]string {
	return append([][2]string(nil), m.Pairs...)
}

// Set replaces the first value of key and drops the others, or appends key if it is absent.
func (m *HeaderMap) Set(key, value string) {
	replaced := false
	kept := m.Pairs[:0]
	for _, kv := range m.Pairs {
		if strings.EqualFold(kv[0], key) {
			if replaced {
				continue
			}
			kv[1] = value
			replaced = true
		}
		kept = append(kept, kv)
	}
	m.Pairs = kept
	if !replaced {
		m.Add(key, value)
	}
}

func (m *HeaderMap) Add(key, value string) {
	m.Pairs = append(m.Pairs, [2]string{strings.ToLower(key), value})
}

func (m *HeaderMap) Remove(key string) {
	kept := m.Pairs[:0]
	for _, kv := range m.Pairs {
		if !strings.EqualFold(kv[0], key) {
			kept = append(kept, kv)
		}
	}
	m.Pairs = kept
}

// splice replaces size bytes of buf at start with value, clamping the range to buf.
func splice(buf []byte, start, size int, value []byte) []byte {
	if start > len(buf) {
		start = len(buf)
	}
	end := start + size
	if size < 0 || end > len(buf) {
		end = len(buf)
	}
	out := make([]byte, 0, len(buf)-(end-start)+len(value))
	out = append(out, buf[:start]...)
	out = append(out, value...)
	return append(out, buf[end:]...)
}
