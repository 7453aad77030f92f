package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/repo"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/service"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	h := New(&service.Services{}, &repo.Repositories{}, "secret")
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.SyncHandler)
	assert.NotNil(t, h.RowsHandler)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSyncHandler := NewMockSyncHandler(ctrl)
	mockRowsHandler := NewMockRowsHandler(ctrl)

	mockSyncHandler.EXPECT().Run(gomock.Any(), gomock.Any()).AnyTimes()
	mockSyncHandler.EXPECT().Status(gomock.Any(), gomock.Any()).AnyTimes()
	mockSyncHandler.EXPECT().Reset(gomock.Any(), gomock.Any()).AnyTimes()
	mockRowsHandler.EXPECT().List(gomock.Any(), gomock.Any()).AnyTimes()
	mockRowsHandler.EXPECT().Get(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		SyncHandler: mockSyncHandler,
		RowsHandler: mockRowsHandler,
		adminToken:  "secret",
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/api/sync/run", "secret", http.StatusOK},
		{"GET", "/api/sync/status", "secret", http.StatusOK},
		{"POST", "/api/state/reset", "secret", http.StatusOK},
		{"GET", "/api/rows/", "secret", http.StatusOK},
		{"GET", "/api/rows/tx-1", "secret", http.StatusOK},
		{"POST", "/api/sync/run", "", http.StatusUnauthorized},
		{"GET", "/api/rows/", "wrong", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
