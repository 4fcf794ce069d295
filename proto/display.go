package proto

import (
	"unicode/utf8"

	"abacus/kernel"
)

// TextPayload encodes a MsgDisplay or MsgTapeLine payload: UTF-8 text cut at a
// rune boundary so it fits in one message.
func TextPayload(s string) []byte {
	if len(s) > kernel.MaxMessageBytes {
		n := kernel.MaxMessageBytes
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n]
	}
	return []byte(s)
}

// DecodeTextPayload decodes a TextPayload.
func DecodeTextPayload(b []byte) (string, bool) {
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}
