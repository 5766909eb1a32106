package history

import (
	"path/filepath"

	"github.com/disintegration/imaging"
)

const thumbSize = 200

// writeThumbnail renders a small preview next to the retained copy. Callers
// treat failure as non-fatal; files imaging cannot decode are simply skipped.
func writeThumbnail(imagePath, dir string) error {
	src, err := imaging.Open(imagePath)
	if err != nil {
		return err
	}

	thumb := imaging.Thumbnail(src, thumbSize, thumbSize, imaging.Lanczos)
	return imaging.Save(thumb, filepath.Join(dir, "thumb.jpg"))
}
