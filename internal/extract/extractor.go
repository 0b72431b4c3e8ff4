package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"idextract/internal/common"
	"idextract/internal/entity"
	"idextract/internal/vlm"
)

// Job is one image to extract. DataURL is populated by the pre-encode
// stage; when empty the extractor reads and encodes the file itself.
type Job struct {
	Filename string // unique within a run; identifies the result
	Path     string // absolute or cwd-relative path to the image
	DataURL  string // base64 data URL, optional
}

// Extractor runs the per-image task: obtain a raw answer from the
// inference collaborator, parse it leniently, normalize every field,
// validate the face box, and optionally write a face crop.
type Extractor struct {
	inferrer vlm.Inferrer
	faceDir  string // empty disables cropping
	logger   *slog.Logger
}

func NewExtractor(inferrer vlm.Inferrer, faceDir string, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{inferrer: inferrer, faceDir: faceDir, logger: logger}
}

// Extract processes one job. Errors are per-image: an unreadable file or a
// failed inference call fails this job only. A malformed model response is
// NOT an error; it degrades to an all-default record.
func (e *Extractor) Extract(ctx context.Context, job Job) (entity.IdentityRecord, error) {
	start := time.Now()

	dataURL := job.DataURL
	if dataURL == "" {
		b, err := os.ReadFile(job.Path)
		if err != nil {
			return entity.IdentityRecord{}, common.NewAppError("UNREADABLE",
				fmt.Sprintf("read %s", job.Filename), fmt.Errorf("%w: %v", common.ErrUnreadable, err))
		}
		dataURL = vlm.EncodeDataURL(b, filepath.Ext(job.Path))
	}

	raw, err := e.inferrer.Infer(ctx, dataURL)
	if err != nil {
		return entity.IdentityRecord{}, common.NewAppError("INFERENCE_FAILED",
			fmt.Sprintf("infer %s", job.Filename), fmt.Errorf("%w: %v", common.ErrInferenceFailed, err))
	}

	fields := vlm.ParseResponse(raw, e.logger)
	rec := vlm.BuildRecord(fields)

	if e.faceDir != "" && rec.FaceBBox != nil {
		if cropPath, err := e.writeFaceCrop(job, *rec.FaceBBox); err != nil {
			// crop failure never affects the record
			e.logger.Warn("extract.crop_failed",
				"filename", job.Filename, "error", err)
		} else {
			e.logger.Info("extract.crop_ok",
				"filename", job.Filename, "path", cropPath)
		}
	}

	e.logger.Info("extract.ok",
		"filename", job.Filename,
		"id_type", rec.IDType,
		"altered", rec.Altered,
		"has_bbox", rec.FaceBBox != nil,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}
