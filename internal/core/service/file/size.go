package file

import (
	"fmt"
	"math"
)

// sizeLabel renders a byte count as rounded kilobytes, e.g. 2048 -> "2 KB"
func sizeLabel(size int64) string {
	return fmt.Sprintf("%d KB", int64(math.Round(float64(size)/1024)))
}
