package sim

import (
	"context"

	"github.com/katalvlaran/stringnet/estimator"
)

// offsetSink renumbers bins so a resumed run continues its bin sequence.
type offsetSink struct {
	next   estimator.Sink
	offset int
}

func (s offsetSink) Write(ctx context.Context, recs []estimator.Record) error {
	for i := range recs {
		recs[i].Bin += s.offset
	}

	return s.next.Write(ctx, recs)
}
