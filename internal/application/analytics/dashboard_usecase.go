// Package analytics contiene los casos de uso del dashboard de ventas: KPIs del período,
// variación frente al período anterior, serie para el gráfico y resumen del año fiscal.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

// Períodos del dashboard.
const (
	PeriodThisMonth = "this-month"
	PeriodLastMonth = "last-month"
	PeriodThisYear  = "this-year"
	PeriodCustom    = "custom"
)

const (
	dateLayout = "2006-01-02"
	// monthlyBucketAfterDays a partir de este rango (en días) la serie se agrupa por mes.
	monthlyBucketAfterDays = 60
	// fiscalYearStartMonth el año fiscal indio empieza el 1 de abril.
	fiscalYearStartMonth = time.April
)

var hundred = decimal.NewFromInt(100)

// DashboardUseCase genera los datos del dashboard de ventas.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// DateRange rango de días completos [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}

// endOfDay último instante del día End, para consultas BETWEEN.
func (r DateRange) endOfDay() time.Time {
	return r.End.Add(24*time.Hour - time.Nanosecond)
}

func (r DateRange) days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// previousMonth mes calendario completo anterior al que contiene t.
func previousMonth(t time.Time) DateRange {
	end := firstOfMonth(t).AddDate(0, 0, -1)
	return DateRange{Start: firstOfMonth(end), End: end}
}

// ResolvePeriod calcula el rango actual y el de comparación (nil en custom).
// Un período desconocido, o custom sin fechas, se trata como this-month.
func ResolvePeriod(period, start, end string, now time.Time) (current DateRange, previous *DateRange, err error) {
	today := truncateDay(now)

	if period == PeriodCustom && strings.TrimSpace(start) != "" && strings.TrimSpace(end) != "" {
		s, errS := time.ParseInLocation(dateLayout, strings.TrimSpace(start), now.Location())
		e, errE := time.ParseInLocation(dateLayout, strings.TrimSpace(end), now.Location())
		if errS != nil || errE != nil {
			return DateRange{}, nil, fmt.Errorf("%w: fechas %q - %q (formato YYYY-MM-DD)", domain.ErrInvalidInput, start, end)
		}
		if e.Before(s) {
			return DateRange{}, nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
		}
		return DateRange{Start: s, End: e}, nil, nil
	}

	switch period {
	case PeriodLastMonth:
		current = previousMonth(today)
		prev := previousMonth(current.Start)
		previous = &prev
	case PeriodThisYear:
		current = DateRange{Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location()), End: today}
		prev := DateRange{
			Start: time.Date(today.Year()-1, time.January, 1, 0, 0, 0, 0, today.Location()),
			End:   time.Date(today.Year()-1, time.December, 31, 0, 0, 0, 0, today.Location()),
		}
		previous = &prev
	default:
		current = DateRange{Start: firstOfMonth(today), End: today}
		prev := previousMonth(today)
		previous = &prev
	}
	return current, previous, nil
}

// ChangeString variación porcentual redondeada a entero: "+12%", "-3%".
// Sin ventas previas: "+100%" si hay ventas actuales, "N/A" si tampoco.
func ChangeString(current, previous decimal.Decimal) string {
	if previous.IsPositive() {
		change := current.Sub(previous).Div(previous).Mul(hundred).Round(0)
		if change.IsNegative() {
			return change.String() + "%"
		}
		return "+" + change.String() + "%"
	}
	if current.IsPositive() {
		return "+100%"
	}
	return "N/A"
}

// SalesData KPIs, variación y serie del período pedido.
//
// Tres llamadas en paralelo:
//  1. SalesKPIs(actual)
//  2. SalesKPIs(anterior), si el período tiene comparación
//  3. SalesSeries(actual, día|mes)
func (uc *DashboardUseCase) SalesData(ctx context.Context, period, start, end string, now time.Time) (*dto.SalesDataResponse, error) {
	current, previous, err := ResolvePeriod(period, start, end, now)
	if err != nil {
		return nil, err
	}
	unit := repository.BucketDay
	if current.days() > monthlyBucketAfterDays {
		unit = repository.BucketMonth
	}

	type kpiResult struct {
		kpis repository.SalesKPIs
		err  error
	}
	type seriesResult struct {
		buckets []repository.SalesBucket
		err     error
	}

	curCh := make(chan kpiResult, 1)
	prevCh := make(chan kpiResult, 1)
	seriesCh := make(chan seriesResult, 1)

	go func() {
		k, err := uc.analyticsRepo.SalesKPIs(ctx, current.Start, current.endOfDay())
		curCh <- kpiResult{k, err}
	}()
	go func() {
		if previous == nil {
			prevCh <- kpiResult{}
			return
		}
		k, err := uc.analyticsRepo.SalesKPIs(ctx, previous.Start, previous.endOfDay())
		prevCh <- kpiResult{k, err}
	}()
	go func() {
		b, err := uc.analyticsRepo.SalesSeries(ctx, current.Start, current.endOfDay(), unit)
		seriesCh <- seriesResult{b, err}
	}()

	cur := <-curCh
	prev := <-prevCh
	series := <-seriesCh

	if cur.err != nil {
		return nil, fmt.Errorf("dashboard: KPIs del período: %w", cur.err)
	}
	if prev.err != nil {
		return nil, fmt.Errorf("dashboard: KPIs del período anterior: %w", prev.err)
	}
	if series.err != nil {
		return nil, fmt.Errorf("dashboard: serie de ventas: %w", series.err)
	}

	labels, data := fillSeries(current, unit, series.buckets)
	return &dto.SalesDataResponse{
		Labels:        labels,
		Data:          data,
		Total:         cur.kpis.TotalSales.Round(2),
		TotalProfit:   cur.kpis.TotalProfit.Round(2),
		TotalInvoices: cur.kpis.TotalInvoices,
		Change:        ChangeString(cur.kpis.TotalSales, prev.kpis.TotalSales),
		TimeUnit:      unit,
	}, nil
}

// fillSeries genera una etiqueta por día (o por mes) del rango y rellena con cero
// los períodos sin ventas.
func fillSeries(r DateRange, unit string, buckets []repository.SalesBucket) ([]string, []decimal.Decimal) {
	byKey := make(map[string]decimal.Decimal, len(buckets))
	for _, b := range buckets {
		key := b.Period.Format(dateLayout)
		byKey[key] = byKey[key].Add(b.Total)
	}

	var labels []string
	var data []decimal.Decimal
	if unit == repository.BucketMonth {
		for m := firstOfMonth(r.Start); !m.After(r.End); m = m.AddDate(0, 1, 0) {
			key := m.Format(dateLayout)
			labels = append(labels, key)
			data = append(data, byKey[key])
		}
		return labels, data
	}
	for day := r.Start; !day.After(r.End); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		labels = append(labels, key)
		data = append(data, byKey[key])
	}
	return labels, data
}

// FinancialYearStart 1 de abril del año fiscal que contiene now.
func FinancialYearStart(now time.Time) time.Time {
	year := now.Year()
	if now.Month() < fiscalYearStartMonth {
		year--
	}
	return time.Date(year, fiscalYearStartMonth, 1, 0, 0, 0, 0, now.Location())
}

// FinancialYearSummary ventas y utilidad desde el inicio del año fiscal hasta hoy.
func (uc *DashboardUseCase) FinancialYearSummary(ctx context.Context, now time.Time) (*dto.FinancialYearSummaryResponse, error) {
	r := DateRange{Start: FinancialYearStart(now), End: truncateDay(now)}
	k, err := uc.analyticsRepo.SalesKPIs(ctx, r.Start, r.endOfDay())
	if err != nil {
		return nil, fmt.Errorf("dashboard: año fiscal: %w", err)
	}
	return &dto.FinancialYearSummaryResponse{
		Start:       r.Start.Format(dateLayout),
		End:         r.End.Format(dateLayout),
		TotalSales:  k.TotalSales.Round(2),
		TotalProfit: k.TotalProfit.Round(2),
	}, nil
}
