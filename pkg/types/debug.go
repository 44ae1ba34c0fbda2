package types

import (
	"fmt"
	"os"
)

// Debug-level constants
const (
	FS_ERR  uint8 = 0
	FS_WARN uint8 = 2
	FS_INFO uint8 = 3
	FS_DBG  uint8 = 7
)

// Global debug level
var G_DEBUG_LEVEL uint8 = FS_WARN

// SetDebugLevel sets the global debug level
func SetDebugLevel(level uint8) {
	G_DEBUG_LEVEL = level
}

// Debug prints a message if the global level admits it
func Debug(level uint8, format string, a ...interface{}) {
	if G_DEBUG_LEVEL >= level {
		fmt.Printf(format+"\n", a...)
	}
}

// Fs_err prints an error message. Errors go to stderr: stdout is reserved
// for the checker's rule diagnostics.
func Fs_err(format string, a ...interface{}) {
	if G_DEBUG_LEVEL >= FS_ERR {
		fmt.Fprintf(os.Stderr, "[ERROR] "+format+"\n", a...)
	}
}

// Fs_warn prints a warning message
func Fs_warn(format string, a ...interface{}) {
	if G_DEBUG_LEVEL >= FS_WARN {
		fmt.Printf("[WARN] "+format+"\n", a...)
	}
}

// Fs_info prints an info message
func Fs_info(format string, a ...interface{}) {
	if G_DEBUG_LEVEL >= FS_INFO {
		fmt.Printf("[INFO] "+format+"\n", a...)
	}
}

// Fs_debug prints a debug message
func Fs_debug(format string, a ...interface{}) {
	if G_DEBUG_LEVEL >= FS_DBG {
		fmt.Printf("[DEBUG] "+format+"\n", a...)
	}
}

// DumpHex prints a hex dump of a byte slice
func DumpHex(data []byte, prefix string) {
	if G_DEBUG_LEVEL >= FS_DBG {
		fmt.Printf("%s: ", prefix)
		for i, b := range data {
			fmt.Printf("%02x ", b)
			if (i+1)%16 == 0 && i < len(data)-1 {
				fmt.Printf("\n%s: ", prefix)
			}
		}
		fmt.Println()
	}
}
