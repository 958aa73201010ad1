package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-odk-sync/internal/config"
	"github.com/MKhiriev/go-odk-sync/internal/logger"
	"github.com/MKhiriev/go-odk-sync/internal/mock"
	"github.com/MKhiriev/go-odk-sync/internal/service"
	"github.com/MKhiriev/go-odk-sync/models"
)

func newTestApp(t *testing.T, job service.SyncJob, cfg config.ClientWorkers) *App {
	t.Helper()
	app, err := NewApp(&service.ClientServices{SyncJob: job}, cfg, t.TempDir(), logger.Nop())
	require.NoError(t, err)
	return app
}

func resultWith(outcome models.SyncOutcome) *models.SyncResult {
	r := models.NewSyncResult("run", time.Now())
	r.AppLevelOutcome = outcome
	return r
}

func TestNewApp_RequiresServices(t *testing.T) {
	_, err := NewApp(nil, config.ClientWorkers{}, "", logger.Nop())
	assert.Error(t, err)
	_, err = NewApp(&service.ClientServices{}, config.ClientWorkers{}, "", logger.Nop())
	assert.Error(t, err)
}

func TestNewApp_Workers(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockSyncJob(ctrl)

	assert.Equal(t, 0, newTestApp(t, job, config.ClientWorkers{}).workers.Len())
	assert.Equal(t, 1, newTestApp(t, job, config.ClientWorkers{SyncInterval: time.Minute}).workers.Len())
	assert.Equal(t, 2, newTestApp(t, job, config.ClientWorkers{SyncInterval: time.Minute, Watch: true}).workers.Len())
}

func TestApp_Run_OneShot(t *testing.T) {
	tests := []struct {
		name    string
		result  *models.SyncResult
		err     error
		wantErr error
	}{
		{name: "success", result: resultWith(models.SyncSuccess)},
		{name: "unresolved tables", result: resultWith(models.SyncFailure), wantErr: ErrSyncIncomplete},
		{name: "no result", wantErr: ErrSyncIncomplete},
		{name: "run error", err: service.ErrSyncInProgress, wantErr: service.ErrSyncInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			job := mock.NewMockSyncJob(ctrl)
			job.EXPECT().Trigger(gomock.Any()).Return(tt.result, tt.err)

			err := newTestApp(t, job, config.ClientWorkers{}).Run(context.Background())
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApp_Run_Periodic(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockSyncJob(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	gomock.InOrder(
		job.EXPECT().Trigger(gomock.Any()).Return(nil, errors.New("offline")),
		job.EXPECT().Start(gomock.Any(), time.Minute).Do(func(context.Context, time.Duration) { cancel() }),
		job.EXPECT().Stop(),
	)

	err := newTestApp(t, job, config.ClientWorkers{SyncInterval: time.Minute}).Run(ctx)
	assert.NoError(t, err)
}
