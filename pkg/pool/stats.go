// ABOUTME: Stats snapshot of one pool's counters with easyjson encoding
// ABOUTME: Active = Created - Free - Dropped; Created never decreases

package pool

import (
	"github.com/mailru/easyjson/jwriter"
)

// Stats is a point-in-time view of a pool.
type Stats struct {
	Name    string
	Kind    string
	Created int // instances allocated by the pool
	Free    int // instances waiting for reuse
	Active  int // instances held by callers
	Dropped int // free instances discarded by Drain
	Buckets int // array pools only
	Enabled bool
}

// Sum adds the counters of every entry in stats. Name and Kind are left empty.
func Sum(stats []Stats) Stats {
	var total Stats
	total.Enabled = true
	for _, s := range stats {
		total.Created += s.Created
		total.Free += s.Free
		total.Active += s.Active
		total.Dropped += s.Dropped
		total.Buckets += s.Buckets
		total.Enabled = total.Enabled && s.Enabled
	}
	return total
}

// MarshalEasyJSON writes s as a JSON object.
func (s Stats) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"name":`)
	w.String(s.Name)
	w.RawString(`,"kind":`)
	w.String(s.Kind)
	w.RawString(`,"created":`)
	w.Int(s.Created)
	w.RawString(`,"free":`)
	w.Int(s.Free)
	w.RawString(`,"active":`)
	w.Int(s.Active)
	w.RawString(`,"dropped":`)
	w.Int(s.Dropped)
	if s.Kind == KindArray {
		w.RawString(`,"buckets":`)
		w.Int(s.Buckets)
	}
	w.RawString(`,"enabled":`)
	w.Bool(s.Enabled)
	w.RawByte('}')
}

// MarshalJSON implements json.Marshaler.
func (s Stats) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	s.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}
