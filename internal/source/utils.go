package source

import (
	"os"
	"path/filepath"
	"slices"
)

// normalizeCRLF replaces every \r\n with \n leaving lone \r intact.
// Returns the new slice and whether anything changed.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false
	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	var out []uint32
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Пустой индекс — весь файл одна строка.
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: наибольший lineIdx[i] < off; сам '\n' ещё принадлежит
	// своей строке
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi + 1 // количество переводов строки до off

	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных путях
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath resolves p against the current working directory.
func AbsolutePath(p string) (string, error) {
	return filepath.Abs(p)
}

// RelativePath rewrites p relative to base when possible.
func RelativePath(p, base string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	return filepath.Rel(absBase, abs)
}

// BaseName returns the final path element.
func BaseName(p string) string {
	return filepath.Base(p)
}

// Getwd wraps os.Getwd for callers that tolerate an empty fallback.
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
