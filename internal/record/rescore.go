package record

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/logging"
)

// TableChange describes how the table version moved during a re-score.
type TableChange string

// Table version movements.
const (
	TableSame      TableChange = "same"
	TableUpgrade   TableChange = "upgrade"
	TableDowngrade TableChange = "downgrade"
	// TableReplaced means the table name changed or a version was not semver.
	TableReplaced TableChange = "replaced"
)

// RescoreOptions select the tables used for re-scoring.
type RescoreOptions struct {
	// GWPTable overrides the stored GWP table of CO2e records. It accepts a table
	// name or a semver constraint such as "^6".
	GWPTable string
}

// Rescored is the outcome of re-scoring one record.
type Rescored struct {
	Record      Record          `json:"record"`
	Before      engine.Response `json:"before"`
	After       engine.Response `json:"after"`
	Changed     bool            `json:"changed"`
	TableChange TableChange     `json:"table_change"`
}

// Rescore re-evaluates the stored input with eng's tables.
//
// The stored record is not modified. Changed reports whether any result value
// differs; a table version bump alone does not count as a change.
func Rescore(ctx context.Context, eng *engine.Engine, rec Record, opts RescoreOptions) (Rescored, error) {
	req := rec.Input
	if opts.GWPTable != "" && req.CO2e != nil {
		co2e := *req.CO2e
		co2e.GWPTable = opts.GWPTable
		req.CO2e = &co2e
	}

	after, err := eng.Evaluate(ctx, req)
	if err != nil {
		return Rescored{}, fmt.Errorf("re-scoring record %s: %w", rec.ID, err)
	}

	changed, err := resultsDiffer(rec.Result, after)
	if err != nil {
		return Rescored{}, err
	}

	out := Rescored{
		Record:      rec,
		Before:      rec.Result,
		After:       after,
		Changed:     changed,
		TableChange: compareTableVersions(rec.TableVersion, after.TableVersion),
	}

	logging.FromContext(ctx).Debug().
		Str("component", "record").
		Str("record_id", rec.ID.String()).
		Str("before_table", rec.TableVersion).
		Str("after_table", after.TableVersion).
		Bool("changed", changed).
		Msg("record re-scored")
	return out, nil
}

func resultsDiffer(before, after engine.Response) (bool, error) {
	before.TableVersion, after.TableVersion = "", ""
	a, err := json.Marshal(before)
	if err != nil {
		return false, fmt.Errorf("encoding stored result: %w", err)
	}
	b, err := json.Marshal(after)
	if err != nil {
		return false, fmt.Errorf("encoding re-scored result: %w", err)
	}
	return !bytes.Equal(a, b), nil
}

// compareTableVersions compares two "name@version" identifiers. Names may differ:
// GWP tables are named per assessment report (ar5, ar6) and ordered by version.
func compareTableVersions(before, after string) TableChange {
	if before == after {
		return TableSame
	}
	_, beforeVer, ok1 := strings.Cut(before, "@")
	_, afterVer, ok2 := strings.Cut(after, "@")
	if !ok1 || !ok2 {
		return TableReplaced
	}
	return compareVersions(beforeVer, afterVer)
}

func compareVersions(beforeVer, afterVer string) TableChange {
	b, err := semver.NewVersion(beforeVer)
	if err != nil {
		return TableReplaced
	}
	a, err := semver.NewVersion(afterVer)
	if err != nil {
		return TableReplaced
	}
	switch a.Compare(b) {
	case 1:
		return TableUpgrade
	case -1:
		return TableDowngrade
	default:
		return TableSame
	}
}
