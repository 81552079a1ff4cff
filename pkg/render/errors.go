package render

import "errors"

var (
	ErrNoTemplateSource = errors.New("render: need either a base dir or an fs.FS")
	ErrTemplateNotFound = errors.New("render: template not found")
	ErrParseTemplate    = errors.New("render: failed to parse template")
	ErrExecuteTemplate  = errors.New("render: failed to execute template")
	ErrNoRenderers      = errors.New("render: no renderers configured")
)
