package sourcemap

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const (
	vlqBaseShift       = 5
	vlqContinuationBit = 1 << vlqBaseShift
	vlqValueMask       = vlqContinuationBit - 1
	// Seven base64 digits carry 35 bits, enough for a signed 32-bit delta.
	vlqMaxShift = 30
)

var base64Values = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(base64Alphabet); i++ {
		t[base64Alphabet[i]] = int8(i)
	}
	return t
}()

// decodeVLQ reads one base64 VLQ value starting at pos and returns it together
// with the position just past it.
func decodeVLQ(s string, pos int) (int64, int, error) {
	var (
		result int64
		shift  uint
	)
	for {
		if pos >= len(s) {
			return 0, pos, formatErrorf("truncated VLQ value at offset %d", pos)
		}
		digit := base64Values[s[pos]]
		if digit < 0 {
			return 0, pos, formatErrorf("invalid base64 character %q at offset %d", s[pos], pos)
		}
		pos++
		result += int64(digit&vlqValueMask) << shift
		if digit&vlqContinuationBit == 0 {
			break
		}
		shift += vlqBaseShift
		if shift > vlqMaxShift {
			return 0, pos, formatErrorf("VLQ value overflows at offset %d", pos)
		}
	}
	negative := result&1 == 1
	result >>= 1
	if negative {
		result = -result
	}
	return result, pos, nil
}
