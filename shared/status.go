package shared

import "strconv"

// Status is the result code of every host call. Non-Ok values implement error so that they can
// be returned directly and matched with errors.Is.
type Status uint32

const (
	StatusOk                   Status = 0
	StatusNotFound             Status = 1
	StatusBadArgument          Status = 2
	StatusSerializationFailure Status = 3
	StatusParseFailure         Status = 4
	StatusInvalidMemoryAccess  Status = 6
	StatusEmpty                Status = 7
	StatusCasMismatch          Status = 8
	StatusBrokenConnection     Status = 9
	StatusInternalFailure      Status = 10
	StatusUnimplemented        Status = 12
)

var statusNames = map[Status]string{
	StatusOk:                   "ok",
	StatusNotFound:             "not found",
	StatusBadArgument:          "bad argument",
	StatusSerializationFailure: "serialization failure",
	StatusParseFailure:         "parse failure",
	StatusInvalidMemoryAccess:  "invalid memory access",
	StatusEmpty:                "empty",
	StatusCasMismatch:          "cas mismatch",
	StatusBrokenConnection:     "broken connection",
	StatusInternalFailure:      "internal failure",
	StatusUnimplemented:        "unimplemented",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown status " + strconv.FormatUint(uint64(s), 10)
}

func (s Status) Error() string {
	return "proxy status: " + s.String()
}

// Err returns nil for StatusOk and the status itself otherwise.
func (s Status) Err() error {
	if s == StatusOk {
		return nil
	}
	return s
}
