package cursor

// Byte-class predicates for the low-level YAML grammar (spec component
// "low-level grammar"). These are pure functions over a single byte; the
// multi-byte productions built from them (newline normalization, comments,
// gaps, indicators) live alongside the parser that needs them since they
// also depend on flow-vs-block context.

// IsSpaceOrTab matches the two byte values YAML treats as horizontal
// whitespace.
func IsSpaceOrTab(b byte) bool { return b == ' ' || b == '\t' }

// IsDigit matches ASCII 0-9.
func IsDigit(b byte) bool { return b >= '0' && b <= '9' }

// IsHexDigit matches ASCII hex digits, either case.
func IsHexDigit(b byte) bool {
	return IsDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// IsOctalDigit matches ASCII 0-7.
func IsOctalDigit(b byte) bool { return b >= '0' && b <= '7' }

// IsLetter matches ASCII letters.
func IsLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

// Indicators is the set of bytes that may not begin a plain scalar.
var Indicators = []byte("-?:,[]{}#&*!|>'\"%@`")

// IsIndicator matches a byte from Indicators.
func IsIndicator(b byte) bool { return IsIn(Indicators)(b) }
