package emmental

// Symbol is the atomic token Emmental dispatches: an unsigned 8-bit byte.
type Symbol = byte

// EOT is pushed by a string-backed SymbolIO in place of failing when its
// input is exhausted.
const EOT Symbol = 4
