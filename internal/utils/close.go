package utils

import (
	"io"
)

// maxDrain caps how much of an unread body is discarded to allow
// connection reuse.
const maxDrain = 64 << 10

// DrainAndClose discards what is left of an HTTP response body, up to a
// limit, and closes it so the transport can reuse the connection.
func DrainAndClose(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.CopyN(io.Discard, body, maxDrain)
	_ = body.Close()
}
