package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	controller "github.com/secmon-lab/covidboard/pkg/controller/http"
	"github.com/secmon-lab/covidboard/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
	"github.com/secmon-lab/covidboard/pkg/repository"
	"github.com/secmon-lab/covidboard/pkg/service/chart"
	"github.com/secmon-lab/covidboard/pkg/service/export"
	"github.com/secmon-lab/covidboard/pkg/usecase"
	"github.com/xuri/excelize/v2"
)

const testCSV = `UID,Admin2,Province_State,Country_Region,1/22/20,1/23/20,1/24/20,1/25/20
84006001,Alameda,California,US,10,20,30,40
84006019,Fresno,California,US,5,8,13,21
84001001,Autauga,Alabama,US,1,2,4,8
84001003,Baldwin,Alabama,US,0,3,6,9
`

func newTestServer(t *testing.T, fetch func(ctx context.Context) (*model.RawTable, error)) *controller.Server {
	ctx := ctxlog.With(context.Background(), slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})))
	return controller.NewServer(ctx, ":0", newTestUseCases(t, fetch))
}

func newTestUseCases(t *testing.T, fetch func(ctx context.Context) (*model.RawTable, error)) *controller.UseCases {
	if fetch == nil {
		fetch = func(ctx context.Context) (*model.RawTable, error) {
			return model.ParseRawTable(strings.NewReader(testCSV))
		}
	}
	source := &mocks.SourceMock{
		FetchFunc: fetch,
		NameFunc:  func() string { return "testdata" },
	}

	cfg := model.DefaultDashboardConfig()
	snapshots := usecase.NewSnapshot(source, repository.NewMemory())
	dashboard := usecase.NewDashboard(snapshots, cfg)
	return controller.NewUseCases(dashboard, snapshots, chart.New(cfg.Chart), export.NewExcelExporter())
}

func do(t *testing.T, server *controller.Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

func TestServer_Health(t *testing.T) {
	server := newTestServer(t, nil)
	w := do(t, server, http.MethodGet, "/health")

	gt.Equal(t, w.Code, http.StatusOK)
	body := decode[map[string]string](t, w)
	gt.Equal(t, body["status"], "healthy")
	gt.Equal(t, body["service"], "covidboard")
}

func TestServer_Options(t *testing.T) {
	server := newTestServer(t, nil)
	w := do(t, server, http.MethodGet, "/api/options")

	gt.Equal(t, w.Code, http.StatusOK)
	options := decode[model.DashboardOptions](t, w)
	gt.Equal(t, options.States, []types.StateName{"California", "Alabama"})
	gt.Equal(t, options.DefaultState, types.StateName("California"))
	gt.Equal(t, options.Dates.Len(), 4)
	gt.Equal(t, options.Dates[3].Label, "25 Jan, 2020")
	gt.Equal(t, options.DefaultTo, 3)
}

func TestServer_Counties(t *testing.T) {
	server := newTestServer(t, nil)

	w := do(t, server, http.MethodGet, "/api/states/Alabama/counties")
	gt.Equal(t, w.Code, http.StatusOK)
	body := decode[struct {
		State    string   `json:"state"`
		Counties []string `json:"counties"`
	}](t, w)
	gt.Equal(t, body.State, "Alabama")
	gt.Equal(t, body.Counties, []string{"Autauga", "Baldwin"})

	w = do(t, server, http.MethodGet, "/api/states/New%20York/counties")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.S(t, w.Body.String()).Contains(`"counties":[]`)
}

func TestServer_StateSeries(t *testing.T) {
	server := newTestServer(t, nil)

	t.Run("selected counties", func(t *testing.T) {
		w := do(t, server, http.MethodGet, "/api/series/state?state=California&county=Fresno&county=Alameda&from=0&to=2")
		gt.Equal(t, w.Code, http.StatusOK)

		set := decode[model.SeriesSet](t, w)
		gt.Equal(t, set.Title, "Covid19 confirmed cases for California")
		gt.Equal(t, set.LegendTitle, "Counties")
		gt.Equal(t, set.Names(), []string{"Fresno", "Alameda"})
		gt.Equal(t, set.Series[1].Values, []int64{10, 20, 30})
	})

	t.Run("invalid time range", func(t *testing.T) {
		w := do(t, server, http.MethodGet, "/api/series/state?state=California&from=2&to=1")
		gt.Equal(t, w.Code, http.StatusBadRequest)
		gt.Equal(t, decode[map[string]string](t, w)["error"], "Not valid time range period.")
	})

	t.Run("missing position", func(t *testing.T) {
		w := do(t, server, http.MethodGet, "/api/series/state?state=California&from=0")
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})

	t.Run("malformed position", func(t *testing.T) {
		w := do(t, server, http.MethodGet, "/api/series/state?state=California&from=zero&to=1")
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})

	t.Run("unknown state", func(t *testing.T) {
		w := do(t, server, http.MethodGet, "/api/series/state?state=Atlantis&from=0&to=1")
		gt.Equal(t, w.Code, http.StatusNotFound)
	})
}

func TestServer_AllStatesSeries(t *testing.T) {
	server := newTestServer(t, nil)

	w := do(t, server, http.MethodGet, "/api/series/states?from=0&to=3")
	gt.Equal(t, w.Code, http.StatusOK)
	set := decode[model.SeriesSet](t, w)
	gt.Equal(t, set.Title, "Covid19 confirmed cases for all states (22 Jan, 2020 - 25 Jan, 2020)")
	gt.Equal(t, set.Names(), []string{"California", "Alabama"})
	gt.Equal(t, set.Series[1].Values, []int64{1, 5, 10, 17})

	w = do(t, server, http.MethodGet, "/api/series/states?from=3&to=3")
	gt.Equal(t, w.Code, http.StatusBadRequest)
}

func TestServer_Charts(t *testing.T) {
	server := newTestServer(t, nil)

	for _, target := range []string{
		"/api/charts/states.png?from=0&to=3",
		"/api/charts/state.png?state=California&county=Alameda&from=1&to=3",
	} {
		w := do(t, server, http.MethodGet, target)
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, w.Header().Get("Content-Type"), "image/png")

		img, err := png.Decode(w.Body)
		gt.NoError(t, err).Required()
		gt.Equal(t, img.Bounds().Dx(), 1200)
	}

	w := do(t, server, http.MethodGet, "/api/charts/states.png?from=1&to=0")
	gt.Equal(t, w.Code, http.StatusBadRequest)
	gt.S(t, w.Header().Get("Content-Type")).Contains("application/json")
}

func TestServer_Export(t *testing.T) {
	server := newTestServer(t, nil)

	w := do(t, server, http.MethodGet, "/api/export/state.xlsx?state=New%20Mexico&from=0&to=1")
	gt.Equal(t, w.Code, http.StatusNotFound)

	w = do(t, server, http.MethodGet, "/api/export/state.xlsx?state=California&from=0&to=1")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, w.Header().Get("Content-Type"), export.ContentType)
	gt.S(t, w.Header().Get("Content-Disposition")).Contains("covid19-california.xlsx")

	f, err := excelize.OpenReader(w.Body)
	gt.NoError(t, err).Required()
	defer f.Close()
	rows, err := f.GetRows(export.NewExcelExporter().SheetName())
	gt.NoError(t, err).Required()
	gt.Equal(t, rows[0], []string{"Date", "California"})
	gt.Equal(t, rows[2], []string{"23 Jan, 2020", "28"})

	w = do(t, server, http.MethodGet, "/api/export/states.xlsx?from=0&to=3")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.S(t, w.Header().Get("Content-Disposition")).Contains("covid19-states.xlsx")
}

func TestServer_Refresh(t *testing.T) {
	server := newTestServer(t, nil)

	w := do(t, server, http.MethodGet, "/api/snapshot")
	gt.Equal(t, w.Code, http.StatusOK)
	info := decode[model.SnapshotInfo](t, w)
	gt.Equal(t, info.Rows, 4)
	gt.Equal(t, info.States, 2)
	gt.Equal(t, info.LatestDate, "25 Jan, 2020")

	w = do(t, server, http.MethodPost, "/api/refresh")
	gt.Equal(t, w.Code, http.StatusOK)
	record := decode[model.RefreshRecord](t, w)
	gt.Equal(t, record.Trigger, types.RefreshTriggerManual)
	gt.Equal(t, record.Status, types.RefreshStatusSucceeded)
	gt.V(t, record.SnapshotID).NotEqual(info.ID)

	w = do(t, server, http.MethodGet, "/api/refreshes?limit=1")
	gt.Equal(t, w.Code, http.StatusOK)
	records := decode[[]model.RefreshRecord](t, w)
	gt.A(t, records).Length(1)
	gt.Equal(t, records[0].ID, record.ID)

	w = do(t, server, http.MethodGet, "/api/refreshes")
	gt.A(t, decode[[]model.RefreshRecord](t, w)).Length(2)

	w = do(t, server, http.MethodGet, "/api/refreshes/"+record.ID.String())
	gt.Equal(t, w.Code, http.StatusOK)
	found := decode[model.RefreshRecord](t, w)
	gt.Equal(t, found.ID, record.ID)
	gt.Equal(t, found.SnapshotID, record.SnapshotID)

	w = do(t, server, http.MethodGet, "/api/refreshes/"+types.NewRefreshID().String())
	gt.Equal(t, w.Code, http.StatusNotFound)

	for _, limit := range []string{"abc", "0", "1000"} {
		w = do(t, server, http.MethodGet, "/api/refreshes?limit="+limit)
		gt.Equal(t, w.Code, http.StatusBadRequest)
	}
}

func TestServer_DataUnavailable(t *testing.T) {
	server := newTestServer(t, func(ctx context.Context) (*model.RawTable, error) {
		return model.ParseRawTable(strings.NewReader("<html>rate limited</html>\n"))
	})

	for _, target := range []string{
		"/api/options",
		"/api/series/states?from=0&to=1",
		"/api/snapshot",
	} {
		w := do(t, server, http.MethodGet, target)
		gt.Equal(t, w.Code, http.StatusServiceUnavailable)
		gt.S(t, decode[map[string]string](t, w)["error"]).Contains("unavailable")
	}

	w := do(t, server, http.MethodPost, "/api/refresh")
	gt.Equal(t, w.Code, http.StatusServiceUnavailable)

	// the service keeps answering after failed fetches
	w = do(t, server, http.MethodGet, "/health")
	gt.Equal(t, w.Code, http.StatusOK)
}

func TestServer_Frontend(t *testing.T) {
	server := newTestServer(t, nil)
	w := do(t, server, http.MethodGet, "/")
	gt.Equal(t, w.Code, http.StatusOK)
	gt.S(t, w.Body.String()).Contains("Covid19")
}

func TestFallbackHome(t *testing.T) {
	t.Run("chart spans the default range", func(t *testing.T) {
		w := httptest.NewRecorder()
		controller.FallbackHome(newTestUseCases(t, nil))(w, httptest.NewRequest(http.MethodGet, "/", nil))
		gt.Equal(t, w.Code, http.StatusOK)
		body := w.Body.String()
		gt.S(t, body).Contains(`/api/charts/states.png?from=0&amp;to=3`)
		gt.S(t, body).Contains("22 Jan, 2020 to 25 Jan, 2020")
	})

	t.Run("no chart without data", func(t *testing.T) {
		uc := newTestUseCases(t, func(ctx context.Context) (*model.RawTable, error) {
			return nil, errors.New("upstream is down")
		})
		w := httptest.NewRecorder()
		controller.FallbackHome(uc)(w, httptest.NewRequest(http.MethodGet, "/", nil))
		gt.Equal(t, w.Code, http.StatusOK)
		gt.S(t, w.Body.String()).NotContains("/api/charts/states.png")
		gt.S(t, w.Body.String()).Contains("not loaded yet")
	})
}
