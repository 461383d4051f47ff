package painting

import "errors"

// ErrDone is returned by [Painter.Step] once the configured number of cycles
// has been painted.
var ErrDone = errors.New("all painting cycles complete")
