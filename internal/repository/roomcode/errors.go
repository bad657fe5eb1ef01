package roomcode

import "errors"

var ErrCodeTaken = errors.New("room code already taken")
