package easysh

import (
	"fmt"
)

// CatchPanicOrError runs f and turns a panic into a returned error.
// Command implementations run behind it: a panicking command surfaces
// as a failed line, not as a crashed shell.
func CatchPanicOrError(f func() error) error {
	var err error
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			var ok bool
			if err, ok = r.(error); !ok {
				err = fmt.Errorf("%v", r)
			}
		}()
		err = f()
	}()
	return err
}
