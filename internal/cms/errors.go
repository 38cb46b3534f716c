package cms

import "fmt"

// MalformedRecordError reports a CMS record that failed boundary validation.
// Records that reach the rest of the system are guaranteed well-formed.
type MalformedRecordError struct {
	Resource string
	ID       string
	Reason   string
}

func (e *MalformedRecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("malformed %s record %s: %s", e.Resource, e.ID, e.Reason)
	}
	return fmt.Sprintf("malformed %s record: %s", e.Resource, e.Reason)
}

// RequestError reports a failed CMS API call.
type RequestError struct {
	Resource   string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("cms request for %s returned status %d", e.Resource, e.StatusCode)
	}
	return fmt.Sprintf("cms request for %s failed: %v", e.Resource, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
