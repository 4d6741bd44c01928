package service

import "errors"

// ErrNoResponses is returned by distribution analysis and survey aggregation
// when given an empty response set. Mapping and completion checks degrade to
// defaults instead.
var ErrNoResponses = errors.New("no responses to analyze")
