package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/newsbot/internal/models"
	"github.com/pribylovaa/newsbot/internal/pkg/log"
	"github.com/pribylovaa/newsbot/internal/storage"
)

// DefaultSources — встроенные источники, создаваемые при первом запуске.
var DefaultSources = []models.Source{
	{ID: "habr", Type: models.SourceTypeSite, Name: "Хабр", URL: "https://habr.com/ru/news/", Enabled: true},
	{ID: "vc", Type: models.SourceTypeSite, Name: "vc.ru", URL: "https://vc.ru/", Enabled: true},
	{ID: "tproger", Type: models.SourceTypeSite, Name: "Tproger", URL: "https://tproger.ru/", Enabled: true},
	{ID: "3dnews", Type: models.SourceTypeSite, Name: "3DNews", URL: "https://3dnews.ru/", Enabled: true},
	{ID: "ixbt", Type: models.SourceTypeSite, Name: "iXBT", URL: "https://ixbt.com/", Enabled: true},
	{ID: "habr_tg", Type: models.SourceTypeChannel, Name: "Хабр (Telegram)", URL: "https://t.me/habr_com", Enabled: true},
	{ID: "techcrunch_tg", Type: models.SourceTypeChannel, Name: "TechCrunch (Telegram)", URL: "https://t.me/techcrunch", Enabled: true},
}

// Bootstrap создаёт отсутствующие встроенные источники и инициализирует
// settings:ai_agent значением "on", если его нет. Существующие записи не меняются.
func (s *Service) Bootstrap(ctx context.Context) error {
	const op = "service.bootstrap.Bootstrap"

	lg := log.From(ctx)

	var errs []error
	var created int

	for _, src := range DefaultSources {
		exists, err := s.storage.SourceExists(ctx, src.ID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if exists {
			continue
		}

		if err := s.storage.SaveSource(ctx, src); err != nil {
			errs = append(errs, err)
			continue
		}
		created++
	}

	if _, ok, err := s.storage.Setting(ctx, storage.SettingAIAgent); err != nil {
		errs = append(errs, err)
	} else if !ok {
		initial := onOff(s.cfg.AI.Agent == settingOn)
		if err := s.storage.SetSetting(ctx, storage.SettingAIAgent, initial, 0); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", op, errors.Join(errs...))
	}

	lg.Info("bootstrap_done",
		slog.String("op", op),
		slog.Int("sources_created", created),
		slog.Bool("ai_agent", s.AIEnabled(ctx)),
	)

	return nil
}
