// Package record persists calculator evaluations as auditable records.
//
// A Record stores the request, the response and the version of the lookup table
// that produced it, under a ULID. Records can be re-scored against newer tables
// (for example after an IPCC GWP revision) without mutating the original.
package record

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/calcerr"
	"github.com/Web-Star-Studio/daton-esg-insight-sub026/internal/engine"
)

// Record is one persisted evaluation.
type Record struct {
	ID           ulid.ULID       `json:"id"`
	Kind         engine.Kind     `json:"kind"`
	TableVersion string          `json:"table_version"`
	CreatedAt    time.Time       `json:"created_at"`
	Input        engine.Request  `json:"input"`
	Result       engine.Response `json:"result"`
}

// New builds a record. The caller supplies the clock and the ULID entropy source,
// so records are reproducible in tests.
func New(
	kind engine.Kind,
	tableVersion string,
	input engine.Request,
	result engine.Response,
	now time.Time,
	entropy io.Reader,
) (Record, error) {
	if !kind.Valid() {
		return Record{}, calcerr.Invalid("kind", string(kind), "unknown record kind")
	}
	if input.Kind != kind || result.Kind != kind {
		return Record{}, calcerr.Invalid("kind", string(kind),
			fmt.Sprintf("input is %q and result is %q", input.Kind, result.Kind))
	}

	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		return Record{}, fmt.Errorf("generating record id: %w", err)
	}

	return Record{
		ID:           id,
		Kind:         kind,
		TableVersion: tableVersion,
		CreatedAt:    now.UTC(),
		Input:        input,
		Result:       result,
	}, nil
}

// FromResponse builds a record for a successful evaluation of req.
func FromResponse(req engine.Request, resp engine.Response, now time.Time, entropy io.Reader) (Record, error) {
	return New(req.Kind, resp.TableVersion, req, resp, now, entropy)
}

// Marshal encodes the record as JSON.
func (r Record) Marshal() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding record %s: %w", r.ID, err)
	}
	return data, nil
}

// Unmarshal decodes a record from JSON.
func Unmarshal(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("decoding record: %w", err)
	}
	if r.Kind != r.Input.Kind {
		return Record{}, calcerr.Invalid("kind", string(r.Kind), "does not match the stored input")
	}
	return r, nil
}
