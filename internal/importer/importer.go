// Package importer converts source-specific rows into the canonical Order
// and Transfer vocabulary. Importers are the only code that touches source
// field names; everything downstream sees canonical records only.
package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/troopledger/troopledger/internal/model"
)

// Source names one upstream feed. They double as metadata keys.
type Source string

// Source constants.
const (
	SourceOrders Source = "digital-cookie-orders"
	SourceAPI    Source = "smart-cookies-api"
	SourceReport Source = "smart-cookies-report"
)

// ImportSet accumulates canonical records for one pipeline run. It replaces
// a shared mutable store: each run builds its own set and hands it to the
// engine, so the whole pipeline is a composition of functions over explicit
// state.
type ImportSet struct {
	TroopID   string
	Orders    []model.Order
	Transfers []model.Transfer
	// Issues are non-fatal import notes shown to the user (a source that
	// failed its structural check, a report skipped for precedence).
	Issues   []string
	Warnings []model.Warning
	Imported map[Source]time.Time

	// Clock stamps Imported entries; overridable in tests.
	Clock func() time.Time

	// Progress, when set, is called once per imported record so the caller
	// can drive a progress display.
	Progress func()
}

// NewImportSet creates an empty set for the given troop.
func NewImportSet(troopID string) *ImportSet {
	return &ImportSet{
		TroopID:  troopID,
		Imported: make(map[Source]time.Time),
		Clock:    time.Now,
	}
}

// HasSource reports whether a source already contributed records this run.
func (s *ImportSet) HasSource(src Source) bool {
	_, ok := s.Imported[src]
	return ok
}

func (s *ImportSet) markImported(src Source) {
	s.Imported[src] = s.Clock().UTC()
}

func (s *ImportSet) step() {
	if s.Progress != nil {
		s.Progress()
	}
}

func (s *ImportSet) issue(format string, args ...any) {
	s.Issues = append(s.Issues, fmt.Sprintf(format, args...))
}

func (s *ImportSet) warn(wtype model.WarningType, message string, context map[string]string) {
	s.Warnings = append(s.Warnings, model.Warning{
		Type:    wtype,
		Message: message,
		Context: context,
	})
}

// importVarieties maps id-keyed quantity fields onto the closed variety set,
// recording a warning for each unknown id. Unknown counts are excluded, not
// guessed. Ids are visited in sorted order so repeated imports of the same
// inputs produce identical warning sequences.
func (s *ImportSet) importVarieties(quantities map[string]int, recordID string) model.Varieties {
	ids := make([]string, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	varieties := make(model.Varieties)
	for _, id := range ids {
		count := quantities[id]
		v := model.Variety(id)
		if !model.KnownVariety(v) {
			s.warn(model.WarningUnknownVariety,
				fmt.Sprintf("unknown variety id %q", id),
				map[string]string{"varietyId": id, "recordId": recordID})
			continue
		}
		varieties[v] += count
	}
	return varieties
}
