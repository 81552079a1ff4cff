package i18n

import "errors"

var (
	ErrInvalidLanguageCode   = errors.New("invalid language code")
	ErrFailedToReadFile      = errors.New("failed to read language file")
	ErrFailedToParseFile     = errors.New("failed to parse language file")
	ErrUnsupportedFileFormat = errors.New("unsupported language file format")
	ErrLoadingCancelled      = errors.New("loading language cancelled")
	ErrNilSource             = errors.New("language source is nil")
)
