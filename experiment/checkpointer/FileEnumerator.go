package checkpointer

import "fmt"

// FilenameEnumerator returns a function which will return filenames
// with a counter suffix, starting at start+1. For example,
// FilenameEnumerator(0, "weights", ".bin") returns weights1.bin, then
// weights2.bin, and so on.
func FilenameEnumerator(start int, filename, extension string) func() string {
	i := start
	return func() string {
		i++
		return fmt.Sprintf("%v%v%v", filename, i, extension)
	}
}

// Filename returns a function which always returns filename, so that
// each checkpoint overwrites the last
func Filename(filename string) func() string {
	return func() string {
		return filename
	}
}
