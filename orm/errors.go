package orm

import (
	"github.com/iov-one/custody/errors"
)

// Orm reserves 100~109 error codes

// ErrInvalidIndex is returned when a key or index specified is invalid
var ErrInvalidIndex = errors.Register(100, "invalid index")
