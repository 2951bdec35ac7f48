package connectors

import "errors"

var ErrNotConnected = errors.New("not connected")
