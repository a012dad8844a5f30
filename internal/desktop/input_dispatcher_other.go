//go:build !linux

package desktop

import "fmt"

// NewUinputDispatcher has no backend outside Linux: github.com/bendahl/uinput
// only speaks to /dev/uinput.
func NewUinputDispatcher(width, height int) (InputDispatcher, error) {
	return nil, fmt.Errorf("desktop: uinput input dispatch requires Linux")
}
