// Package mascarpone implements the execution core of Mascarpone, the
// reflective dialect of Emmental: the current interpreter is itself a
// first-class value that can be reified onto the stack, mutated via
// Extract/Install, and deified back into the running role, and
// operations can carry their own interpreter as a closure over
// evaluation rules.
//
// A State owns a heterogeneous Element stack and the current
// *Interpreter; Run drives a program one Symbol (Unicode code point) at
// a time, re-reading the current interpreter after every dispatch since
// intrinsics like Deify and quote-mode entry/exit may have replaced it.
package mascarpone
