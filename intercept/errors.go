package intercept

import (
	"errors"
	"fmt"
)

// ErrNothingInjected is reported when the OS accepted zero synthetic events.
var ErrNothingInjected = errors.New("no input injected")

// InjectionError describes a failed synthetic event. Code carries the
// OS-reported error number when there is one.
type InjectionError struct {
	Input UnicodeInput
	Code  uint32
	Err   error
}

func (e *InjectionError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("inject %v %s: %v (os error %d)", e.Input.Char, e.Input.Phase, e.Err, e.Code)
	}
	return fmt.Sprintf("inject %v %s: %v", e.Input.Char, e.Input.Phase, e.Err)
}

func (e *InjectionError) Unwrap() error {
	return e.Err
}
