package credentials

import (
	stderrors "errors"
	"strings"
)

func isNotFound(err error) bool {
	return stderrors.Is(err, ErrTokenNotFound)
}

func clean(token string) string {
	return strings.TrimSpace(token)
}
