package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/newsbot/internal/storage"
	"github.com/pribylovaa/newsbot/internal/storage/memory"
	"github.com/pribylovaa/newsbot/mocks"
	"github.com/stretchr/testify/require"
)

// TestAIEnabled — значение из хранилища важнее конфигурации.
func TestAIEnabled(t *testing.T) {
	t.Parallel()

	st := memory.New()
	ctx := context.Background()
	svc := newTestService(t, st, Deps{})

	require.False(t, svc.AIEnabled(ctx), "по умолчанию берётся cfg.AI.Agent=off")

	svc.cfg.AI.Agent = "on"
	require.True(t, svc.AIEnabled(ctx))

	require.NoError(t, svc.SetAIEnabled(ctx, false))
	require.False(t, svc.AIEnabled(ctx))

	v, ok, err := st.Setting(ctx, storage.SettingAIAgent)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "off", v)
}

// TestAIEnabled_StorageDown — при ошибке хранилища используется конфигурация.
func TestAIEnabled_StorageDown(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	st.EXPECT().Setting(gomock.Any(), storage.SettingAIAgent).Return("", false, errors.New("down"))

	svc := newTestService(t, st, Deps{})
	svc.cfg.AI.Agent = "on"

	require.True(t, svc.AIEnabled(context.Background()))
}

// TestChatEnabled — чат включён, пока значение не "off".
func TestChatEnabled(t *testing.T) {
	t.Parallel()

	st := memory.New()
	ctx := context.Background()
	svc := newTestService(t, st, Deps{})

	require.True(t, svc.ChatEnabled(ctx))

	require.NoError(t, svc.SetChatEnabled(ctx, false))
	require.False(t, svc.ChatEnabled(ctx))
	require.Equal(t, Settings{AIAgent: false, ChatEnabled: false}, svc.CurrentSettings(ctx))

	require.NoError(t, st.SetSetting(ctx, storage.SettingChatEnabled, "yes", 0))
	require.True(t, svc.ChatEnabled(ctx))
}

// TestUserChatMode — флаг ставится с TTL и снимается удалением.
func TestUserChatMode(t *testing.T) {
	t.Parallel()

	st := memory.New()
	ctx := context.Background()
	svc := newTestService(t, st, Deps{})

	require.False(t, svc.UserInChatMode(ctx, 42))

	require.NoError(t, svc.SetUserChatMode(ctx, 42, true))
	require.True(t, svc.UserInChatMode(ctx, 42))
	require.False(t, svc.UserInChatMode(ctx, 43))

	require.NoError(t, svc.SetUserChatMode(ctx, 42, false))
	require.False(t, svc.UserInChatMode(ctx, 42))
}
