package services

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"

	"github.com/whatsuprobl9x-arch/novaurl/internal/models"
	"github.com/whatsuprobl9x-arch/novaurl/pkg/utils"
)

var customCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{4,20}$`)

type CreateLinkDTO struct {
	RedirectURL    string
	DiscordWebhook string
	ShortCode      string
	MarkupFilename string
	Markup         []byte
}

func (d CreateLinkDTO) validate() error {
	err := validation.ValidateStruct(&d,
		validation.Field(&d.RedirectURL, validation.Required.Error("redirect_url is required")),
		validation.Field(&d.DiscordWebhook, validation.Required.Error("discord_webhook is required")),
		validation.Field(&d.ShortCode, validation.Match(customCodePattern).Error("short_code must be 4-20 alphanumeric characters")),
	)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	if d.MarkupFilename != "" && !strings.HasSuffix(strings.ToLower(d.MarkupFilename), ".html") {
		return &ValidationError{Reason: "Only HTML files are allowed"}
	}
	return nil
}

type LinkService struct {
	db            *gorm.DB
	notifier      *Notifier
	logger        *slog.Logger
	codeGenerator func(int) (string, error)
}

func NewLinkService(db *gorm.DB, notifier *Notifier, logger *slog.Logger) *LinkService {
	return &LinkService{
		db:            db,
		notifier:      notifier,
		logger:        logger,
		codeGenerator: utils.GenerateShortCode,
	}
}

// Create registers a new short link. Custom codes are checked for
// availability; random codes are regenerated until one is free, with the
// unique index on short_code catching races between the check and the
// insert. The creation webhook is dispatched in the background and not
// awaited.
func (s *LinkService) Create(ctx context.Context, dto CreateLinkDTO) (*models.Link, error) {
	if err := dto.validate(); err != nil {
		return nil, err
	}

	var shortCode string
	if dto.ShortCode != "" {
		var existing models.Link
		err := s.db.WithContext(ctx).Where("short_code = ?", dto.ShortCode).First(&existing).Error
		if err == nil {
			return nil, ErrCodeTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		shortCode = dto.ShortCode
	} else {
		for {
			code, err := s.codeGenerator(utils.ShortCodeLength)
			if err != nil {
				return nil, err
			}
			var existing models.Link
			err = s.db.WithContext(ctx).Where("short_code = ?", code).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				shortCode = code
				break
			}
			if err != nil {
				return nil, err
			}
		}
	}

	var customHTML *string
	if dto.Markup != nil {
		markup := string(dto.Markup)
		customHTML = &markup
	}

	link := models.Link{
		ID:             utils.NewID(),
		ShortCode:      shortCode,
		RedirectURL:    dto.RedirectURL,
		DiscordWebhook: dto.DiscordWebhook,
		CustomHTML:     customHTML,
		CreatedAt:      time.Now().UTC(),
		ClickCount:     0,
	}

	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		return nil, err
	}

	s.logger.Info("Short URL created", "short_code", link.ShortCode, "redirect_url", link.RedirectURL)

	go s.notifier.NotifyCreation(context.Background(), link.DiscordWebhook, link.ShortCode, link.RedirectURL)

	return &link, nil
}

// List returns every registered link. The slice is never nil, so an empty
// store serializes as [].
func (s *LinkService) List(ctx context.Context) ([]models.Link, error) {
	links := make([]models.Link, 0)
	if err := s.db.WithContext(ctx).Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// Delete removes a link by short code. Recorded visits are kept.
func (s *LinkService) Delete(ctx context.Context, shortCode string) error {
	result := s.db.WithContext(ctx).Where("short_code = ?", shortCode).Delete(&models.Link{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Info("Short URL deleted", "short_code", shortCode)
	return nil
}

// Get fetches a single link by short code.
func (s *LinkService) Get(ctx context.Context, shortCode string) (*models.Link, error) {
	var link models.Link
	err := s.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}
