package game

import (
	"fmt"
	"log"
)

// EnableDebug turns on the Debug* log lines.
var EnableDebug = false

// Debug logs its arguments if debug mode is enabled.
func Debug(args ...interface{}) {
	if EnableDebug {
		log.Print(append([]interface{}{"[game] "}, args...)...)
	}
}

// Debugf logs a formatted message if debug mode is enabled.
func Debugf(format string, args ...interface{}) {
	if EnableDebug {
		log.Printf("[game] "+format, args...)
	}
}

// DebugWarn logs a warning if debug mode is enabled.
func DebugWarn(args ...interface{}) {
	if EnableDebug {
		log.Print("[game] WARN: " + fmt.Sprint(args...))
	}
}
