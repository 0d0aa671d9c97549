package i18n

import "errors"

var (
	ErrNilAdapter          = errors.New("translation adapter is nil")
	ErrNoTranslations      = errors.New("no translations loaded")
	ErrInvalidLanguage     = errors.New("invalid language code")
	ErrUnsupportedFile     = errors.New("unsupported translation file type")
	ErrFailedToReadFile    = errors.New("failed to read translation file")
	ErrFailedToParseFile   = errors.New("failed to parse translation file")
	ErrLoadingCancelled    = errors.New("loading translations cancelled")
	ErrInvalidTranslations = errors.New("invalid translations structure")
)
