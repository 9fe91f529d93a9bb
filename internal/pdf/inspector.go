package pdf

import (
	"errors"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// ErrEmptyAsset marks a template asset that opened fine but has no pages.
var ErrEmptyAsset = errors.New("template asset has no pages")

// Inspect opens a template asset and returns its page count, failing when
// the bytes are not a readable PDF. Run before rendering so a broken asset
// is caught ahead of any drawing.
func Inspect(asset []byte) (int, error) {
	doc, err := fitz.NewFromMemory(asset)
	if err != nil {
		return 0, fmt.Errorf("open template asset: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if pages == 0 {
		return 0, ErrEmptyAsset
	}
	return pages, nil
}
