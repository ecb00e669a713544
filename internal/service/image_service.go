package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"blogmedia/internal/config"
	"blogmedia/internal/domain"
	"blogmedia/internal/imaging"
	"blogmedia/internal/metrics"
	"blogmedia/internal/port"
)

const defaultImageCacheSize = 512

// ImageUploadInput is the DTO for image upload requests.
type ImageUploadInput struct {
	Title      string
	Data       []byte
	UploadedBy *uuid.UUID
}

// ImageService defines the image ingestion contract.
type ImageService interface {
	Upload(ctx context.Context, input ImageUploadInput) (*domain.Image, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Image, error)
	List(ctx context.Context, offset, limit int) ([]domain.Image, int, error)
}

// rendition is one encoded variant waiting to be stored.
type rendition struct {
	variant domain.Variant
	key     string
	data    []byte
}

type imageService struct {
	imageRepo port.ImageRepository
	storage   port.ObjectStorage
	pool      *imaging.Pool
	cache     *lru.Cache[uuid.UUID, domain.Image]
	metrics   *metrics.ImageMetrics
	bucket    string
	cfg       config.ImageConfig
	newKey    func() string
}

// NewImageService creates a new ImageService implementation.
// m may be nil to disable metrics.
func NewImageService(
	imageRepo port.ImageRepository,
	storage port.ObjectStorage,
	pool *imaging.Pool,
	m *metrics.ImageMetrics,
	storageCfg *config.StorageConfig,
	imageCfg *config.ImageConfig,
) ImageService {
	size := imageCfg.CacheSize
	if size <= 0 {
		size = defaultImageCacheSize
	}
	cache, _ := lru.New[uuid.UUID, domain.Image](size)

	return &imageService{
		imageRepo: imageRepo,
		storage:   storage,
		pool:      pool,
		cache:     cache,
		metrics:   m,
		bucket:    storageCfg.Bucket,
		cfg:       *imageCfg,
		newKey:    func() string { return uuid.New().String() + domain.ImageExtension },
	}
}

func (s *imageService) Upload(ctx context.Context, input ImageUploadInput) (*domain.Image, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || len(input.Data) == 0 {
		s.metrics.ObserveUpload(metrics.ResultValidation)
		return nil, domain.ErrImageInputRequired
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		s.metrics.ObserveUpload(metrics.ResultValidation)
		return nil, domain.ErrTitleTooLong
	}

	start := time.Now()
	var renditions []rendition
	err := s.pool.Do(ctx, func() error {
		var renderErr error
		renditions, renderErr = s.render(input.Data)
		return renderErr
	})
	s.metrics.ObserveStage(metrics.StageProcess, time.Since(start))
	if err != nil {
		switch {
		case errors.Is(err, imaging.ErrPoolBusy):
			s.metrics.ObserveUpload(metrics.ResultBusy)
			return nil, domain.ErrProcessingBusy
		case ctx.Err() != nil:
			return nil, fmt.Errorf("imageService.Upload: %w", ctx.Err())
		default:
			log.Printf("imageService.Upload: processing %q (%d bytes) failed: %v", title, len(input.Data), err)
			s.metrics.ObserveUpload(metrics.ResultProcessing)
			return nil, domain.NewStageError(domain.StageProcessing, err)
		}
	}

	start = time.Now()
	uploaded := make([]string, 0, len(renditions))
	for _, r := range renditions {
		if err := s.storage.PutObject(ctx, s.bucket, r.key, r.data, domain.ImageContentType); err != nil {
			log.Printf("imageService.Upload: storing %s variant %s failed: %v", r.variant, r.key, err)
			s.removeObjects(ctx, uploaded)
			s.metrics.ObserveUpload(metrics.ResultStore)
			return nil, domain.NewStageError(domain.StageUpload, err)
		}
		uploaded = append(uploaded, r.key)
		s.metrics.AddStoredBytes(string(r.variant), len(r.data))
	}
	s.metrics.ObserveStage(metrics.StageUpload, time.Since(start))

	baseURL := s.storage.PublicURL(s.bucket)
	img := &domain.Image{
		Title:      title,
		UploadedBy: input.UploadedBy,
	}
	for _, r := range renditions {
		switch r.variant {
		case domain.VariantOriginal:
			img.OriginalURL = baseURL + r.key
		case domain.VariantDisplay:
			img.DisplayURL = baseURL + r.key
		case domain.VariantThumbnail:
			img.ThumbnailURL = baseURL + r.key
		}
	}

	start = time.Now()
	if err := s.imageRepo.Create(ctx, img); err != nil {
		log.Printf("imageService.Upload: failed to persist image metadata: %v", err)
		s.removeObjects(ctx, uploaded)
		s.metrics.ObserveUpload(metrics.ResultPersist)
		return nil, fmt.Errorf("imageService.Upload: persisting metadata: %w", err)
	}
	s.metrics.ObserveStage(metrics.StagePersist, time.Since(start))
	s.metrics.ObserveUpload(metrics.ResultOK)

	s.cache.Add(img.ID, *img)
	log.Printf("imageService.Upload: stored image %s (%q, %d bytes in)", img.ID, img.Title, len(input.Data))
	return img, nil
}

// render decodes data once and encodes the original, display and thumbnail
// variants concurrently. The result is ordered original, display, thumbnail.
func (s *imageService) render(data []byte) ([]rendition, error) {
	src, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}

	out := []rendition{
		{variant: domain.VariantOriginal, key: s.newKey()},
		{variant: domain.VariantDisplay, key: s.newKey()},
		{variant: domain.VariantThumbnail, key: s.newKey()},
	}
	sources := []func() image.Image{
		func() image.Image { return src },
		func() image.Image { return imaging.Resize(src, s.cfg.DisplayLongSide) },
		func() image.Image { return imaging.Resize(src, s.cfg.ThumbnailLongSide) },
	}

	var g errgroup.Group
	for i := range out {
		g.Go(func() error {
			encoded, err := imaging.EncodeJPEG(sources[i](), s.cfg.JPEGQuality)
			if err != nil {
				return err
			}
			out[i].data = encoded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// removeObjects deletes objects stored earlier in a failed request. Failures
// are logged and otherwise ignored; the original error wins.
func (s *imageService) removeObjects(ctx context.Context, keys []string) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := s.storage.DeleteObject(ctx, s.bucket, key); err != nil {
			log.Printf("imageService.removeObjects: orphaned object %s/%s: %v", s.bucket, key, err)
		}
	}
}

func (s *imageService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Image, error) {
	if img, ok := s.cache.Get(id); ok {
		return &img, nil
	}
	img, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Add(img.ID, *img)
	return img, nil
}

func (s *imageService) List(ctx context.Context, offset, limit int) ([]domain.Image, int, error) {
	return s.imageRepo.List(ctx, offset, limit)
}
