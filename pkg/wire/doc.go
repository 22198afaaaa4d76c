// Package wire provides the line protocol spoken over the slider UART.
package wire

// The protocol is line-oriented ASCII in both directions. A request is
//
//	VERB[ KEY=VALUE]*\n
//
// and a response is either
//
//	OK[ KEY=VALUE]*\n
//	ERROR <code> <REASON>\n
//
// There is no binary framing, checksum or command ID; exactly one response
// line is produced for each non-blank request line.
//
// Producer: slider controller
// Consumer: host
