package ui

import "errors"

var errNoFetcher = errors.New("ui: a fetcher is required")
