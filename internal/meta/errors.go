package meta

import "errors"

var (
	// ErrInvalidPriority reports a sitemap priority outside [0.0, 1.0].
	ErrInvalidPriority = errors.New("meta: invalid sitemap priority")
	// ErrInvalidChangeFreq reports an unknown sitemap change frequency.
	ErrInvalidChangeFreq = errors.New("meta: invalid sitemap change frequency")
	// ErrNotStruct reports a registration target that is not a struct.
	ErrNotStruct = errors.New("meta: content model must be a struct or struct pointer")
	// ErrNotContentModel reports a registration target without a content-model declaration.
	ErrNotContentModel = errors.New("meta: type does not declare content-model options")
	// ErrUnknownModel reports a registry lookup miss.
	ErrUnknownModel = errors.New("meta: unknown content model")
)
