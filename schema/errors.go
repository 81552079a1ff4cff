package schema

import "errors"

var (
	ErrInvalidTableConfig     = errors.New("invalid table config")
	ErrMissingIdentifier      = errors.New("table config has no identifier entry")
	ErrInvalidHandlerConfig   = errors.New("invalid handler config")
	ErrInvalidCondition       = errors.New("invalid lookup condition")
	ErrUnknownConditionType   = errors.New("unknown lookup condition type")
	ErrFailedToReadConfigFile = errors.New("failed to read config file")
)
