package cborm

import "errors"

// ErrorUnexpectedEof is input buffer exhausted in the middle of a
// data-item.
var ErrorUnexpectedEof = errors.New("cborm.unexpectedEof")

// ErrorReservedEncoding is additional-information 28..30, or a
// two-byte simple value below 32.
var ErrorReservedEncoding = errors.New("cborm.reservedEncoding")

// ErrorUnexpectedBreak is a break-stop with no indefinite-length item
// open.
var ErrorUnexpectedBreak = errors.New("cborm.unexpectedBreak")

// ErrorOddMapLength is an indefinite-length map closed with a
// dangling key.
var ErrorOddMapLength = errors.New("cborm.oddMapLength")

// ErrorLengthOverflow is a definite-length map whose pair-count is
// too large to track.
var ErrorLengthOverflow = errors.New("cborm.lengthOverflow")

// ErrorDepthExceeded is container nesting deeper than the configured
// maxdepth.
var ErrorDepthExceeded = errors.New("cborm.depthExceeded")

// ErrorPrematureEnd is an End event for a definite-length frame that
// still expects child events.
var ErrorPrematureEnd = errors.New("cborm.prematureEnd")

// ErrorUnbalancedEnd is an End event with no open frame.
var ErrorUnbalancedEnd = errors.New("cborm.unbalancedEnd")

// ErrorFrameOverflow is an event for a definite-length frame whose
// expected children have all been encoded, without an intervening End.
var ErrorFrameOverflow = errors.New("cborm.frameOverflow")

// ErrorOutOfSpace is sink cannot accept more bytes.
var ErrorOutOfSpace = errors.New("cborm.outOfSpace")

// ErrorUnknownEvent is an event whose kind is not part of the event
// model.
var ErrorUnknownEvent = errors.New("cborm.unknownEvent")
