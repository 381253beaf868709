package airkorea

import "errors"

var (
	// ErrParsePage means the body could not be read as an html document.
	ErrParsePage = errors.New("airkorea: could not parse page")
	// ErrScriptNotFound means the page has no chart seeding script, so no
	// pollutant has any data.
	ErrScriptNotFound = errors.New("airkorea: chart script not found")
)
