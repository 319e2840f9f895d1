// Package fonts provides label faces backed by the embedded Go fonts, so
// rendering does not depend on fonts installed on the host.
package fonts

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	once   sync.Once
	source *text.FontSource
	errSrc error
)

// Source returns the shared Go Regular font source.
func Source() (*text.FontSource, error) {
	once.Do(func() {
		source, errSrc = text.NewFontSource(goregular.TTF)
		if errSrc != nil {
			errSrc = fmt.Errorf("fonts: load go regular: %w", errSrc)
		}
	})
	return source, errSrc
}

// Face returns a Go Regular face at size points.
func Face(size float64) (text.Face, error) {
	src, err := Source()
	if err != nil {
		return nil, err
	}
	return src.Face(size), nil
}
