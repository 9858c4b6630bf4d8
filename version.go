package ucc

// Version is the interpreter release, reported by `ucc version` and the
// REPL banner.
const Version = "0.2.0"
