package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/secmon-lab/covidboard/pkg/domain/types"
	"github.com/secmon-lab/covidboard/pkg/service/export"
)

const (
	defaultRefreshLimit = 20
	maxRefreshLimit     = 100

	contentTypePNG = "image/png"
)

type handler struct {
	uc *UseCases
}

type countiesResponse struct {
	State    types.StateName    `json:"state"`
	Counties []types.CountyName `json:"counties"`
}

func (h *handler) getOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.uc.dashboard.Options(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, options)
}

func (h *handler) getCounties(w http.ResponseWriter, r *http.Request) {
	state := types.StateName(chi.URLParam(r, "state"))
	counties, err := h.uc.dashboard.Counties(r.Context(), state)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, &countiesResponse{State: state, Counties: counties})
}

func (h *handler) stateSeries(r *http.Request) (*model.SeriesSet, error) {
	from, to, err := parseRange(r)
	if err != nil {
		return nil, err
	}

	query := r.URL.Query()
	req := model.StateChartRequest{
		State:     types.StateName(query.Get("state")),
		FromIndex: from,
		ToIndex:   to,
	}
	for _, county := range query["county"] {
		if county = strings.TrimSpace(county); county != "" {
			req.Counties = append(req.Counties, types.CountyName(county))
		}
	}

	return h.uc.dashboard.StateChart(r.Context(), req)
}

func (h *handler) allStatesSeries(r *http.Request) (*model.SeriesSet, error) {
	from, to, err := parseRange(r)
	if err != nil {
		return nil, err
	}
	return h.uc.dashboard.AllStatesChart(r.Context(), model.AllStatesChartRequest{
		FromIndex: from,
		ToIndex:   to,
	})
}

func (h *handler) getStateSeries(w http.ResponseWriter, r *http.Request) {
	set, err := h.stateSeries(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, set)
}

func (h *handler) getAllStatesSeries(w http.ResponseWriter, r *http.Request) {
	set, err := h.allStatesSeries(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, set)
}

func (h *handler) getStateChart(w http.ResponseWriter, r *http.Request) {
	set, err := h.stateSeries(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.writeChart(w, r, set)
}

func (h *handler) getAllStatesChart(w http.ResponseWriter, r *http.Request) {
	set, err := h.allStatesSeries(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.writeChart(w, r, set)
}

func (h *handler) exportState(w http.ResponseWriter, r *http.Request) {
	set, err := h.stateSeries(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.writeWorkbook(w, r, set, fmt.Sprintf("covid19-%s.xlsx", slug(r.URL.Query().Get("state"))))
}

func (h *handler) exportAllStates(w http.ResponseWriter, r *http.Request) {
	set, err := h.allStatesSeries(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.writeWorkbook(w, r, set, "covid19-states.xlsx")
}

// writeChart renders into a buffer first so a failed render still gets a JSON error
func (h *handler) writeChart(w http.ResponseWriter, r *http.Request, set *model.SeriesSet) {
	var buf bytes.Buffer
	if err := h.uc.renderer.RenderPNG(&buf, set); err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypePNG)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	writeBody(w, r, buf.Bytes())
}

func (h *handler) writeWorkbook(w http.ResponseWriter, r *http.Request, set *model.SeriesSet, filename string) {
	var buf bytes.Buffer
	if err := h.uc.exporter.Export(&buf, set); err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	writeBody(w, r, buf.Bytes())
}

func (h *handler) getSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.uc.snapshots.Current(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snapshot.Info())
}

func (h *handler) listRefreshes(w http.ResponseWriter, r *http.Request) {
	limit := defaultRefreshLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxRefreshLimit {
			handleError(w, r, goerr.New("limit must be between 1 and 100",
				goerr.T(model.ErrTagInvalidRequest),
				goerr.V("limit", v)))
			return
		}
		limit = n
	}

	records, err := h.uc.snapshots.History(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if records == nil {
		records = []*model.RefreshRecord{}
	}
	writeJSON(w, r, http.StatusOK, records)
}

func (h *handler) getRefresh(w http.ResponseWriter, r *http.Request) {
	id := types.RefreshID(chi.URLParam(r, "id"))
	record, err := h.uc.snapshots.GetRefresh(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, record)
}

func (h *handler) postRefresh(w http.ResponseWriter, r *http.Request) {
	record, err := h.uc.snapshots.Refresh(r.Context(), types.RefreshTriggerManual)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, record)
}

// parseRange reads the from/to selector positions
func parseRange(r *http.Request) (int, int, error) {
	query := r.URL.Query()
	from, err := parseIndex(query.Get("from"), "from")
	if err != nil {
		return 0, 0, err
	}
	to, err := parseIndex(query.Get("to"), "to")
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

func parseIndex(v, name string) (int, error) {
	if v == "" {
		return 0, goerr.New("date position is required",
			goerr.T(model.ErrTagInvalidRequest),
			goerr.V("param", name))
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, goerr.Wrap(err, "date position must be an integer",
			goerr.T(model.ErrTagInvalidRequest),
			goerr.V("param", name),
			goerr.V("value", v))
	}
	return n, nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "state"
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, s)
}
