package main

import (
	"errors"
	"fmt"

	cerrors "github.com/lbmaian/chatdl/internal/chatdl/errors"
)

// describeErr renders err the way the original's main() bracket-tags
// each exception type it catches (`[Invalid URL]`, `[Parsing Error]`,
// ...) before printing it, rather than a generic Go stack dump.
func describeErr(err error) string {
	tag := "Error"
	switch {
	case errors.Is(err, cerrors.ErrInvalidURL):
		tag = "Invalid URL"
	case errors.Is(err, cerrors.ErrParsing):
		tag = "Parsing Error"
	case errors.Is(err, cerrors.ErrNoChatReplay):
		tag = "No Chat Replay"
	case errors.Is(err, cerrors.ErrVideoUnavailable), errors.Is(err, cerrors.ErrVideoNotFound):
		tag = "Video Unavailable"
	case errors.Is(err, cerrors.ErrTwitchError):
		tag = "Twitch Error"
	case errors.Is(err, cerrors.ErrCookie):
		tag = "Cookies Error"
	case errors.Is(err, cerrors.ErrCallbackArity):
		tag = "Callback Error"
	}
	return fmt.Sprintf("[%s] %v", tag, err)
}
