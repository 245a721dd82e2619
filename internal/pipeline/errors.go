package pipeline

import "fmt"

// DecodeError means the payload is not a valid serialized reading.
// Fatal for that message only; the pipeline keeps running.
type DecodeError struct {
	Payload []byte
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode sensor payload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// PersistError means the storage write failed. The message is dropped:
// storage here is at-most-once, there is no retry or outbox.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist sensor record: %v", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
