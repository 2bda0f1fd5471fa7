package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/five82/deskremote/internal/remote"
	"github.com/five82/deskremote/internal/state"
)

func TestPerformAction(t *testing.T) {
	tests := []struct {
		name    string
		result  *remote.ActionResult
		err     error
		wantErr error
		wantMsg string
	}{
		{
			name:   "success",
			result: &remote.ActionResult{Success: true},
		},
		{
			name:    "server refusal carries text",
			result:  &remote.ActionResult{Success: false, Error: "Permission denied"},
			wantErr: remote.ErrRejected,
			wantMsg: "Permission denied",
		},
		{
			name:    "server refusal without text",
			result:  &remote.ActionResult{Success: false},
			wantErr: remote.ErrRejected,
			wantMsg: "Action failed",
		},
		{
			name:    "transport error is returned verbatim",
			err:     &remote.Error{Kind: remote.KindHTTP, Path: "/action", Status: 400, Message: "Invalid action"},
			wantErr: remote.ErrHTTP,
			wantMsg: "Invalid action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := remote.NewMockAPI(ctrl)
			api.EXPECT().PerformAction(gomock.Any(), remote.ActionRestart).Return(tt.result, tt.err).Times(1)

			e := newTestEngine(t, api)
			_, err := e.PerformAction(context.Background(), remote.ActionRestart)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantMsg, remote.Message(err))
		})
	}
}

func TestPerformAction_UnknownKindSendsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := remote.NewMockAPI(ctrl)

	e := newTestEngine(t, api)
	_, err := e.PerformAction(context.Background(), remote.ActionKind("hibernate"))
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestPerformAction_LeavesStateAlone(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := remote.NewMockAPI(ctrl)
	api.EXPECT().PerformAction(gomock.Any(), remote.ActionSleep).
		Return(&remote.ActionResult{Success: true}, nil).Times(1)

	e := newTestEngine(t, api)
	before := e.Snapshot()
	_, err := e.PerformAction(context.Background(), remote.ActionSleep)
	require.NoError(t, err)

	after := e.Snapshot()
	assert.Equal(t, state.Unknown, after.Connection)
	assert.Equal(t, before.Volume, after.Volume)
	assert.Equal(t, before.HasVolume, after.HasVolume)
}
