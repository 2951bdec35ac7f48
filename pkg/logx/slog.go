package logx

import "github.com/lmittmann/tint"

var Error = tint.Err //nolint:gochecknoglobals
