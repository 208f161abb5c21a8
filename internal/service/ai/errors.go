package ai

import (
	"errors"
	"strconv"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
)

// BackendErrorCode extracts an error code from an SDK error when one is
// available. Returns "" otherwise; the code is diagnostic, never required.
func BackendErrorCode(err error) string {
	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return strconv.Itoa(oaErr.StatusCode)
	}
	var anErr *anthropic.Error
	if errors.As(err, &anErr) {
		return strconv.Itoa(anErr.StatusCode)
	}
	return ""
}
