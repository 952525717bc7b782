package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/greenops"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/logging"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/metrics"
)

// kindInventory labels inventory builds in metrics.
const kindInventory = "inventory"

// Activity is a quantity of a registered emission factor, e.g. 100 of "diesel_l".
type Activity struct {
	// Name labels the line; it defaults to Factor.
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Factor   string  `json:"factor"         yaml:"factor"`
	Quantity float64 `json:"quantity"       yaml:"quantity"`
}

// Inventory resolves each activity against the factor registry and totals the
// emissions by GHG Protocol scope using the named GWP table.
func (e *Engine) Inventory(
	ctx context.Context,
	activities []Activity,
	tableName string,
) (*greenops.Inventory, error) {
	start := time.Now()
	inv, err := e.inventory(activities, tableName)
	metrics.ObserveEvaluation(kindInventory, start, "", err)

	log := logging.FromContext(ctx)
	if err != nil {
		log.Debug().Str("component", "engine").Err(err).Msg("inventory rejected")
		return nil, err
	}
	log.Debug().
		Str("component", "engine").
		Int("lines", len(inv.Lines)).
		Float64("total_kg", inv.TotalKg).
		Str("gwp_table", inv.GWPTable).
		Msg("inventory built")
	return inv, nil
}

func (e *Engine) inventory(activities []Activity, tableName string) (*greenops.Inventory, error) {
	table, err := e.Table(tableName)
	if err != nil {
		return nil, err
	}

	lines := make([]greenops.ActivityLine, 0, len(activities))
	for i, a := range activities {
		entry, err := e.factors.Get(a.Factor)
		if err != nil {
			return nil, fmt.Errorf("activity[%d]: %w", i, err)
		}
		name := a.Name
		if name == "" {
			name = entry.Name
		}
		lines = append(lines, greenops.ActivityLine{
			Name:     name,
			Scope:    entry.Scope,
			Quantity: a.Quantity,
			Factors:  entry.Factors,
		})
	}
	return greenops.BuildInventory(lines, table)
}
