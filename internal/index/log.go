package index

import "log"

func logError(format string, args ...any) {
	log.Printf("ERROR: "+format, args...)
}
