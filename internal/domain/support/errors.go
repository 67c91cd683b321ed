package support

import "errors"

var ErrTicketNotFound = errors.New("support ticket not found")
