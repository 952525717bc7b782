package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/benchmark"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine/batch"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/logging"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/metrics"
)

// Batch run statuses used as the metrics "status" label.
const (
	BatchStatusOK        = "ok"
	BatchStatusPartial   = "partial"
	BatchStatusFailed    = "failed"
	BatchStatusCancelled = "cancelled"
)

// Evaluate validates and evaluates one request.
func (e *Engine) Evaluate(ctx context.Context, req Request) (Response, error) {
	start := time.Now()
	resp, err := e.evaluate(req)
	metrics.ObserveEvaluation(string(req.Kind), start, resp.Class(), err)

	log := logging.FromContext(ctx)
	event := log.Debug().
		Str("component", "engine").
		Str("request_id", req.ID).
		Str("kind", string(req.Kind)).
		Dur("duration", time.Since(start))
	if err != nil {
		event.Err(err).Msg("request rejected")
		return Response{}, err
	}
	event.Str("class", resp.Class()).Msg("request evaluated")
	return resp, nil
}

func (e *Engine) evaluate(req Request) (Response, error) {
	if err := req.Validate(); err != nil {
		return Response{}, err
	}

	resp := Response{ID: req.ID, Kind: req.Kind}
	var err error
	switch req.Kind {
	case KindSignificance:
		err = e.evaluateSignificance(req, &resp)
	case KindFrequencyRate:
		err = e.evaluateFrequencyRate(req, &resp)
	case KindCO2e:
		err = e.evaluateCO2e(req, &resp)
	case KindCompare:
		err = e.evaluateCompare(req, &resp)
	}
	if err != nil {
		return Response{}, err
	}

	if req.Baseline != nil {
		value, lowerIsBetter, _ := resp.Metric()
		cmp, err := benchmark.Compare(value, *req.Baseline, lowerIsBetter)
		if err != nil {
			return Response{}, err
		}
		resp.Benchmark = &cmp
	}
	return resp, nil
}

func (e *Engine) evaluateSignificance(req Request, resp *Response) error {
	res, err := e.classifier.Classify(*req.Significance)
	if err != nil {
		return err
	}
	resp.Significance = &res
	resp.TableVersion = "significance@" + e.classifier.Tables().Version
	return nil
}

func (e *Engine) evaluateFrequencyRate(req Request, resp *Response) error {
	res, err := e.safety.Compute(*req.FrequencyRate)
	if err != nil {
		return err
	}
	resp.FrequencyRate = &res
	return nil
}

func (e *Engine) evaluateCO2e(req Request, resp *Response) error {
	in := req.CO2e
	out := CO2eResult{Factor: in.Factor, Quantity: in.Quantity}

	var factors greenops.GasFactorSet
	if in.Factors != nil {
		factors = *in.Factors
	} else {
		entry, err := e.factors.Get(in.Factor)
		if err != nil {
			return err
		}
		factors = entry.Factors
		out.Unit = entry.Unit
	}

	table, err := e.Table(in.GWPTable)
	if err != nil {
		return err
	}
	res, err := greenops.ComputeCO2e(factors, table)
	if err != nil {
		return err
	}
	out.CO2EquivalenceResult = res

	if in.Quantity != nil {
		kg := greenops.RoundTo(*in.Quantity*res.TotalCO2e, greenops.StandardPrecision)
		out.EmissionsKg = &kg
	}

	resp.CO2e = &out
	resp.TableVersion = table.ID()
	return nil
}

func (e *Engine) evaluateCompare(req Request, resp *Response) error {
	in := req.Compare
	cmp, err := benchmark.Compare(in.Current, in.Baseline, in.LowerIsBetter)
	if err != nil {
		return err
	}
	resp.Compare = &cmp
	return nil
}

// EvaluateBatch evaluates reqs concurrently and returns one result per request, in order.
// Rejected requests are logged at warn level and reported in their result; they never
// stop the run.
func (e *Engine) EvaluateBatch(
	ctx context.Context,
	reqs []Request,
	opts batch.Options,
) ([]batch.Result[Response], error) {
	log := logging.FromContext(ctx)

	results, err := batch.Evaluate(ctx, reqs, func(ctx context.Context, req Request) (Response, error) {
		metrics.BatchItemsInFlight.Inc()
		defer metrics.BatchItemsInFlight.Dec()

		resp, evalErr := e.Evaluate(ctx, req)
		if evalErr != nil {
			log.Warn().
				Str("component", "engine").
				Str("request_id", req.ID).
				Str("kind", string(req.Kind)).
				Err(evalErr).
				Msg("batch request rejected")
		}
		return resp, evalErr
	}, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			metrics.BatchRunsTotal.WithLabelValues(BatchStatusCancelled).Inc()
			return results, fmt.Errorf("batch evaluation: %w", err)
		}
		metrics.BatchRunsTotal.WithLabelValues(BatchStatusFailed).Inc()
		if errors.Is(err, batch.ErrInvalidBatchSize) {
			return results, fmt.Errorf("%w: batch evaluation: %w", calcerr.ErrConfiguration, err)
		}
		return results, fmt.Errorf("batch evaluation: %w", err)
	}

	status := batchStatus(results)
	metrics.BatchRunsTotal.WithLabelValues(status).Inc()
	log.Info().
		Str("component", "engine").
		Int("requests", len(reqs)).
		Int("failed", FailedCount(results)).
		Str("status", status).
		Msg("batch evaluated")
	return results, nil
}

// FailedCount returns the number of results carrying an error.
func FailedCount(results []batch.Result[Response]) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func batchStatus(results []batch.Result[Response]) string {
	failed := FailedCount(results)
	switch {
	case failed == 0:
		return BatchStatusOK
	case failed == len(results):
		return BatchStatusFailed
	default:
		return BatchStatusPartial
	}
}
