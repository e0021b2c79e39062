package msgpack

import "fmt"

// InvalidFormatError reports that the bytes at ByteOffset do not form a
// valid msgpack token where one was expected. Unlike OutOfBuffer, this is
// never resolved by supplying more bytes: the buffer already holds enough
// bytes to know the input is malformed.
type InvalidFormatError struct {
	ByteOffset int64
	Reason     string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid msgpack format at offset %d: %s", e.ByteOffset, e.Reason)
}

// OutOfRangeError reports that a decoded value does not fit the narrower
// type the caller asked for (e.g. a uint64 token read as int8).
type OutOfRangeError struct {
	From string
	To   string
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("value %s out of range for %s", e.From, e.To)
}
