package extract

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"idextract/internal/common"
	"idextract/internal/entity"
)

// writeFaceCrop cuts the validated face region out of the source image and
// writes it as <faceDir>/<base>_face.png. The region is clamped to the
// image bounds; a region entirely outside the image is a crop failure.
func (e *Extractor) writeFaceCrop(job Job, box entity.BBox) (string, error) {
	f, err := os.Open(job.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrCropFailed, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrCropFailed, err)
	}

	rect := image.Rect(box.X, box.Y, box.X+box.W, box.Y+box.H).Intersect(src.Bounds())
	if rect.Empty() {
		return "", fmt.Errorf("%w: bbox outside image bounds", common.ErrCropFailed)
	}

	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Copy(dst, image.Point{}, src, rect, draw.Src, nil)

	base := strings.TrimSuffix(job.Filename, filepath.Ext(job.Filename))
	outPath := filepath.Join(e.faceDir, base+"_face.png")
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrCropFailed, err)
	}
	defer out.Close()

	if err := png.Encode(out, dst); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrCropFailed, err)
	}
	return outPath, nil
}
