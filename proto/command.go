package proto

import "abacus/accum"

// CommandPayload encodes a MsgCommand payload.
//
// Layout:
//   - u8: command kind
//   - u8: digit ('0'..'9') or 0
//   - u8: operator or 0
func CommandPayload(cmd accum.Command) []byte {
	var digit byte
	if cmd.Kind == accum.KindDigit && cmd.Digit >= 0 && cmd.Digit < 0x80 {
		digit = byte(cmd.Digit)
	}
	return []byte{byte(cmd.Kind), digit, byte(cmd.Op)}
}

// DecodeCommandPayload decodes a CommandPayload. Malformed or unknown commands
// report ok=false.
func DecodeCommandPayload(b []byte) (cmd accum.Command, ok bool) {
	if len(b) != 3 {
		return accum.Command{}, false
	}
	cmd.Kind = accum.Kind(b[0])
	switch cmd.Kind {
	case accum.KindDigit:
		cmd.Digit = rune(b[1])
	case accum.KindOperator:
		cmd.Op = accum.Op(b[2])
	}
	if !cmd.Valid() {
		return accum.Command{}, false
	}
	return cmd, true
}
