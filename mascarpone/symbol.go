package mascarpone

// Symbol is the atomic token Mascarpone dispatches: a Unicode code point.
type Symbol = rune

// EOT is pushed by a string-backed SymbolIO in place of failing when its
// input is exhausted.
const EOT Symbol = 4
