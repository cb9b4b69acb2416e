package cborm

import s "github.com/bnclabs/gosettings"

// DefaultSettings for decoders, encoders and the verification walk.
//
//	"maxdepth" (default: 64)
//		capacity of the nesting stack, that is, the deepest
//		container nesting a session will accept.
//	"buffersize" (default: 512)
//		initial capacity, in bytes, of Buffer sinks.
//	"log.level", "log.file"
//		passed on to golog by applications that let cborm
//		configure logging.
func DefaultSettings() s.Settings {
	return s.Settings{
		"maxdepth":   uint64(64),
		"buffersize": uint64(512),
		"log.level":  "info",
		"log.file":   "",
	}
}
