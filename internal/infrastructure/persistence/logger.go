package persistence

import (
	jsoniter "github.com/json-iterator/go"

	"nycschools/pkg/contextx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault           //nolint:gochecknoglobals
)
