// Package wire implements the byte layouts shared by the extension and the host for header maps
// and property paths.
//
// A header map is encoded as a little-endian uint32 pair count, followed by the key and value
// lengths of every pair as little-endian uint32s, followed by every key and value, each
// terminated by a NUL byte.
//
// A property path is the list of path segments joined by NUL bytes.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

var ErrTruncated = errors.New("wire: truncated header map")

// Pair is a single header map entry. Values are kept as bytes since header values are not
// required to be valid UTF-8.
type Pair struct {
	Key   string
	Value []byte
}

// EncodePairs serializes pairs into the header map layout.
func EncodePairs(pairs []Pair) []byte {
	size := 4
	for _, p := range pairs {
		size += 8 + len(p.Key) + 1 + len(p.Value) + 1
	}
	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf, uint32(len(pairs)))
	offset := 4
	for _, p := range pairs {
		binary.LittleEndian.PutUint32(buf[offset:], uint32(len(p.Key)))
		binary.LittleEndian.PutUint32(buf[offset+4:], uint32(len(p.Value)))
		offset += 8
	}
	for _, p := range pairs {
		offset += copy(buf[offset:], p.Key)
		buf[offset] = 0
		offset++
		offset += copy(buf[offset:], p.Value)
		buf[offset] = 0
		offset++
	}
	return buf
}

// EncodeStringPairs is EncodePairs for string values.
func EncodeStringPairs(pairs [][2]string) []byte {
	converted := make([]Pair, len(pairs))
	for i, p := range pairs {
		converted[i] = Pair{Key: p[0], Value: []byte(p[1])}
	}
	return EncodePairs(converted)
}

// DecodePairs parses the header map layout. An empty input decodes to an empty map.
func DecodePairs(data []byte) ([]Pair, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < 4 {
		return nil, ErrTruncated
	}
	count := int(binary.LittleEndian.Uint32(data))
	sizesEnd := 4 + count*8
	if count < 0 || sizesEnd < 4 || sizesEnd > len(data) {
		return nil, fmt.Errorf("%w: %d pairs do not fit in %d bytes", ErrTruncated, count, len(data))
	}
	pairs := make([]Pair, 0, count)
	offset := sizesEnd
	for i := 0; i < count; i++ {
		keySize := int(binary.LittleEndian.Uint32(data[4+i*8:]))
		valueSize := int(binary.LittleEndian.Uint32(data[8+i*8:]))
		if keySize < 0 || valueSize < 0 || offset+keySize+valueSize+2 > len(data) {
			return nil, fmt.Errorf("%w: pair %d overflows the buffer", ErrTruncated, i)
		}
		key := string(data[offset : offset+keySize])
		offset += keySize + 1
		value := make([]byte, valueSize)
		copy(value, data[offset:offset+valueSize])
		offset += valueSize + 1
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	return pairs, nil
}

// DecodeStringPairs is DecodePairs with values converted to strings.
func DecodeStringPairs(data []byte) ([][2]string, error) {
	pairs, err := DecodePairs(data)
	if err != nil {
		return nil, err
	}
	result := make([][2]string, len(pairs))
	for i, p := range pairs {
		result[i] = [2]string{p.Key, string(p.Value)}
	}
	return result, nil
}

// EncodePath joins property path segments with NUL separators.
func EncodePath(path []string) []byte {
	return []byte(strings.Join(path, "\x00"))
}

// DecodePath splits a serialized property path.
func DecodePath(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	return strings.Split(string(data), "\x00")
}
