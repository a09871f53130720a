package api

import (
	"net/http"
	"strconv"

	"TrainBoard/internal/domain/models"
	"TrainBoard/internal/handler/ws"
	"TrainBoard/internal/usecase"
	xhttp "TrainBoard/pkg/http"
	xlogger "TrainBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardEchoHandler exposes the training and chart views over HTTP.
type DashboardEchoHandler struct {
	logger   *xlogger.Logger
	training *usecase.TrainingWidget
	chart    *usecase.StockChart
	hub      *ws.Hub
}

func NewDashboardEchoHandler(logger *xlogger.Logger, training *usecase.TrainingWidget, chart *usecase.StockChart, hub *ws.Hub) *DashboardEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &DashboardEchoHandler{logger: logger, training: training, chart: chart, hub: hub}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/dashboard")
	g.GET("/train", h.TrainSnapshot)
	g.PATCH("/train/form", h.PatchTrainForm)
	g.POST("/train/submit", h.SubmitTraining)
	g.GET("/chart", h.ChartSnapshot)
	g.PATCH("/chart/query", h.PatchChartQuery)
	g.GET("/periods", h.Periods)
	if h.hub != nil {
		g.GET("/ws", h.hub.Handle)
	}
}

func (h *DashboardEchoHandler) TrainSnapshot(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.training.Snapshot())
}

func (h *DashboardEchoHandler) PatchTrainForm(c echo.Context) error {
	req := &models.TrainFormPatch{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	snap := h.training.Snapshot()
	if req.Ticker != nil {
		snap = h.training.SetTicker(*req.Ticker)
	}
	if req.Period != nil {
		snap = h.training.SetPeriod(*req.Period)
	}
	if req.Epochs != nil {
		snap = h.training.SetEpochs(*req.Epochs)
	}
	return xhttp.SuccessResponse(c, snap)
}

// SubmitTraining starts a submission and replies 202 with the state at that
// point. With ?wait=true it replies once the submission settles.
func (h *DashboardEchoHandler) SubmitTraining(c echo.Context) error {
	ctx := c.Request().Context()
	sub := h.training.Submit(ctx)
	h.logger.Debug("training submitted", xlogger.String("submission_id", sub.ID))

	if wantWait(c) {
		if err := sub.Wait(ctx); err != nil {
			return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_TIMEOUT", "", "submission still in flight", http.StatusGatewayTimeout).WithError(err))
		}
		return xhttp.SuccessResponse(c, h.training.Snapshot())
	}
	return xhttp.AcceptedResponse(c, h.training.Snapshot())
}

func (h *DashboardEchoHandler) ChartSnapshot(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.chart.Snapshot())
}

// PatchChartQuery changes the chart parameters, which always triggers a
// fetch. With ?wait=true it replies once the fetch settles.
func (h *DashboardEchoHandler) PatchChartQuery(c echo.Context) error {
	req := &models.ChartQueryPatch{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ctx := c.Request().Context()

	var task *usecase.Task
	switch {
	case req.Ticker != nil && req.Period != nil:
		task = h.chart.SetQuery(ctx, models.ChartQuery{Ticker: *req.Ticker, Period: *req.Period})
	case req.Ticker != nil:
		task = h.chart.SetTicker(ctx, *req.Ticker)
	case req.Period != nil:
		task = h.chart.SetPeriod(ctx, *req.Period)
	default:
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("ticker or period is required"))
	}

	if wantWait(c) {
		if err := task.Wait(ctx); err != nil {
			return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_TIMEOUT", "", "fetch still in flight", http.StatusGatewayTimeout).WithError(err))
		}
	}
	return xhttp.SuccessResponse(c, h.chart.Snapshot())
}

func (h *DashboardEchoHandler) Periods(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.PeriodsResponse{
		Training: models.TrainingPeriods,
		Chart:    models.ChartPeriods,
	})
}

func wantWait(c echo.Context) bool {
	v, err := strconv.ParseBool(c.QueryParam("wait"))
	return err == nil && v
}
