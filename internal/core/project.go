package core

// Project flattens a recording's channel-by-time matrix into draft sample
// rows (IDs are assigned by the store on insert).
//
// Ordering is a contract, not an accident: rows come out channel-major,
// then time-minor, matching acquisition order, and downstream consumers
// may page on it. A recording with C channels and T samples always yields
// exactly C*T rows.
//
// Non-finite values (NaN, ±Inf) from the codec pass through unfiltered;
// the store's float columns accept them.
func Project(rec *Recording) []SampleRecord {
	rows := make([]SampleRecord, 0, len(rec.Channels)*len(rec.Times))
	for ci, channel := range rec.Channels {
		series := rec.Samples[ci]
		for ti, t := range rec.Times {
			rows = append(rows, SampleRecord{
				Channel: channel,
				Time:    t,
				Value:   series[ti],
			})
		}
	}
	return rows
}
