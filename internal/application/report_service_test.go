package application

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ojuto/zendesk-user-reports/config"
	"github.com/ojuto/zendesk-user-reports/internal/infrastructure/zendesk"
)

// fakeInstance serves the four collection endpoints of one Zendesk
// instance from fixed fixtures.
func fakeInstance(t *testing.T, users []map[string]any) *httptest.Server {
	t.Helper()
	writeList := func(w http.ResponseWriter, key string, items []map[string]any) {
		if items == nil {
			items = []map[string]any{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{key: items})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/users.json", func(w http.ResponseWriter, r *http.Request) {
		writeList(w, "users", users)
	})
	mux.HandleFunc("/api/v2/custom_roles.json", func(w http.ResponseWriter, r *http.Request) {
		writeList(w, "custom_roles", nil)
	})
	mux.HandleFunc("/api/v2/brands.json", func(w http.ResponseWriter, r *http.Request) {
		writeList(w, "brands", nil)
	})
	mux.HandleFunc("/api/v2/brand_agents.json", func(w http.ResponseWriter, r *http.Request) {
		writeList(w, "brand_agents", nil)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func instanceUsers(suffix string) []map[string]any {
	now := time.Now()
	return []map[string]any{
		{
			"id": 1, "name": "Inactive " + suffix, "email": "inactive@" + suffix + ".com",
			"role": "agent", "role_type": 0,
			"created_at":    now.Add(-400 * 24 * time.Hour).Format(time.RFC3339),
			"last_login_at": now.Add(-50 * 24 * time.Hour).Format(time.RFC3339),
		},
		{
			"id": 2, "name": "Suspended " + suffix, "email": "suspended@" + suffix + ".com",
			"role": "agent", "role_type": 0, "suspended": true,
			"created_at": now.Add(-400 * 24 * time.Hour).Format(time.RFC3339),
		},
		{
			"id": 3, "name": "Functional " + suffix, "email": "functional@" + suffix + ".com",
			"role": "agent", "role_type": 0, "tags": []string{"functional_user"},
			"created_at":    now.Add(-400 * 24 * time.Hour).Format(time.RFC3339),
			"last_login_at": now.Add(-24 * time.Hour).Format(time.RFC3339),
		},
	}
}

func newInstanceClient(t *testing.T, name, baseURL string) *zendesk.Client {
	t.Helper()
	logger, _ := logrustest.NewNullLogger()
	return zendesk.NewClient(config.InstanceConfig{
		Name: name, BaseURL: baseURL, Email: "a@b.com", APIToken: "token",
	}, logger)
}

func TestReportServiceRunEndToEnd(t *testing.T) {
	vi := fakeInstance(t, instanceUsers("vi"))
	vde := fakeInstance(t, instanceUsers("vde"))

	logger, _ := logrustest.NewNullLogger()
	svc := NewReportService(
		newInstanceClient(t, "VI", vi.URL),
		newInstanceClient(t, "VDE", vde.URL),
		logger,
	)

	out := filepath.Join(t.TempDir(), "user_report.xlsx")
	require.NoError(t, svc.Run(context.Background(), out))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{
		SheetInactive45,
		SheetSuspendedNotLA,
		SheetLightAgentNotLA,
		SheetFunctionalUsers,
		SheetBrandRoleCount,
		SheetCommonUsers,
	}, f.GetSheetList())

	get := func(sheet, axis string) string {
		v, err := f.GetCellValue(sheet, axis)
		require.NoError(t, err)
		return v
	}

	// Exactly one matching user per instance on each cohort sheet.
	assert.Equal(t, "Inactive vi", get(SheetInactive45, "A3"))
	assert.Equal(t, "Inactive vde", get(SheetInactive45, "K3"))
	assert.Equal(t, "", get(SheetInactive45, "A4"))

	assert.Equal(t, "Suspended vi", get(SheetSuspendedNotLA, "A3"))
	assert.Equal(t, "Suspended vde", get(SheetSuspendedNotLA, "K3"))

	// No light agent mismatches: headers only.
	assert.Equal(t, "Name", get(SheetLightAgentNotLA, "A2"))
	assert.Equal(t, "", get(SheetLightAgentNotLA, "A3"))

	assert.Equal(t, "Functional vi", get(SheetFunctionalUsers, "A3"))
	assert.Equal(t, "Functional vde", get(SheetFunctionalUsers, "K3"))

	// No brands or roles: only the aggregate block with its placeholder.
	assert.Equal(t, "All roles across all brands (VI)", get(SheetBrandRoleCount, "D2"))
	assert.Equal(t, "No roles", get(SheetBrandRoleCount, "D4"))
	assert.Equal(t, "0", get(SheetBrandRoleCount, "E4"))
	assert.Equal(t, "", get(SheetBrandRoleCount, "A2"))

	// No shared emails: empty block, scalars right under the header.
	assert.Equal(t, "", get(SheetCommonUsers, "A5"))
	assert.Equal(t, "Double used seats", get(SheetCommonUsers, "A3"))
	assert.Equal(t, "0", get(SheetCommonUsers, "B3"))
	assert.Equal(t, "Used seats", get(SheetCommonUsers, "A4"))
	// Two eligible users per instance minus the contract overage of 7.
	assert.Equal(t, "-3", get(SheetCommonUsers, "B4"))
}

func TestReportServiceRunAbortsOnFetchFailure(t *testing.T) {
	vi := fakeInstance(t, instanceUsers("vi"))

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})
	broken := httptest.NewServer(mux)
	t.Cleanup(broken.Close)

	logger, _ := logrustest.NewNullLogger()
	svc := NewReportService(
		newInstanceClient(t, "VI", vi.URL),
		newInstanceClient(t, "VDE", broken.URL),
		logger,
	)

	out := filepath.Join(t.TempDir(), "user_report.xlsx")
	err := svc.Run(context.Background(), out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching collections")
	assert.NoFileExists(t, out)
}
