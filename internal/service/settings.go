package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/newsbot/internal/pkg/log"
	"github.com/pribylovaa/newsbot/internal/storage"
)

// ChatModeTTL — время жизни флага чат-режима пользователя.
const ChatModeTTL = time.Hour

const (
	settingOn  = "on"
	settingOff = "off"
)

// Settings — текущие значения переключателей.
type Settings struct {
	AIAgent     bool `json:"ai_agent"`
	ChatEnabled bool `json:"ai_chat_enabled"`
}

// AIEnabled сообщает, включена ли генерация постов.
// Без значения в хранилище (или без хранилища) используется cfg.AI.Agent.
func (s *Service) AIEnabled(ctx context.Context) bool {
	const op = "service.settings.AIEnabled"

	v, ok, err := s.storage.Setting(ctx, storage.SettingAIAgent)
	if err != nil {
		log.From(ctx).Warn("setting_read_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}
	if err != nil || !ok {
		return s.cfg.AI.Agent == settingOn
	}

	return v == settingOn
}

// SetAIEnabled переключает генерацию постов.
func (s *Service) SetAIEnabled(ctx context.Context, enabled bool) error {
	const op = "service.settings.SetAIEnabled"

	if err := s.storage.SetSetting(ctx, storage.SettingAIAgent, onOff(enabled), 0); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ChatEnabled сообщает, разрешён ли чат с ИИ. Включён всё, что не "off".
func (s *Service) ChatEnabled(ctx context.Context) bool {
	v, ok, err := s.storage.Setting(ctx, storage.SettingChatEnabled)
	if err != nil || !ok {
		return true
	}

	return v != settingOff
}

// SetChatEnabled переключает чат с ИИ.
func (s *Service) SetChatEnabled(ctx context.Context, enabled bool) error {
	const op = "service.settings.SetChatEnabled"

	if err := s.storage.SetSetting(ctx, storage.SettingChatEnabled, onOff(enabled), 0); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CurrentSettings возвращает оба переключателя.
func (s *Service) CurrentSettings(ctx context.Context) Settings {
	return Settings{AIAgent: s.AIEnabled(ctx), ChatEnabled: s.ChatEnabled(ctx)}
}

// UserInChatMode сообщает, находится ли пользователь в режиме чата.
func (s *Service) UserInChatMode(ctx context.Context, userID int64) bool {
	v, ok, err := s.storage.Setting(ctx, storage.ChatModeKey(userID))
	return err == nil && ok && v == settingOn
}

// SetUserChatMode включает (с TTL ChatModeTTL) или снимает режим чата.
func (s *Service) SetUserChatMode(ctx context.Context, userID int64, on bool) error {
	const op = "service.settings.SetUserChatMode"

	var err error
	if on {
		err = s.storage.SetSetting(ctx, storage.ChatModeKey(userID), settingOn, ChatModeTTL)
	} else {
		err = s.storage.DeleteSetting(ctx, storage.ChatModeKey(userID))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func onOff(b bool) string {
	if b {
		return settingOn
	}

	return settingOff
}
