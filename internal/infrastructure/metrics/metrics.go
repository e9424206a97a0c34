package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/pricing"
)

const namespace = "gst"

// Resultados de una operación de escritura.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultConflict = "conflict"
	ResultError    = "error"
)

var _ billing.Metrics = (*Metrics)(nil)

// Metrics colectores Prometheus de facturación y de la capa HTTP.
type Metrics struct {
	quotes        *prometheus.CounterVec
	quoteLines    prometheus.Histogram
	invoicesSaved *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	gatherer      prometheus.Gatherer
}

// New registra los colectores en reg. Con nil se usa un registro propio
// (los tests crean uno por caso para no chocar con registros duplicados).
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_computed_total",
			Help:      "Cotizaciones calculadas por el motor de precios, por modo.",
		}, []string{"mode"}),
		quoteLines: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_lines",
			Help:      "Líneas por cotización.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		invoicesSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_saved_total",
			Help:      "Escrituras de facturas por operación y resultado.",
		}, []string{"operation", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y código.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gatherer: reg,
	}
	reg.MustRegister(m.quotes, m.quoteLines, m.invoicesSaved, m.httpRequests, m.httpDuration)
	return m
}

// QuoteComputed cuenta una cotización y su número de líneas.
func (m *Metrics) QuoteComputed(mode pricing.PriceMode, lines int) {
	m.quotes.WithLabelValues(string(mode)).Inc()
	m.quoteLines.Observe(float64(lines))
}

// InvoiceSaved cuenta una escritura (create, update, delete) clasificando el error.
func (m *Metrics) InvoiceSaved(operation string, err error) {
	m.invoicesSaved.WithLabelValues(operation, Classify(err)).Inc()
}

// ObserveHTTP registra una petición. route es la plantilla ("/api/invoices/:id"), no la URL.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato de exposición de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Classify traduce un error de dominio a la etiqueta result.
func Classify(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrInvalidInput):
		return ResultInvalid
	case errors.Is(err, domain.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return ResultConflict
	default:
		return ResultError
	}
}
