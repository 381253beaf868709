package airkorea

// Assemble pairs card metadata with script series by position. The page
// emits one chart call per pollutant card in the same order the cards are
// presented, so metadata[i] belongs to series[i]. Metadata without a
// non-empty series at its index is dropped.
func Assemble(station, observedAt string, metadata []Metadata, series [][]*float64) AirStatus {
	pollutants := make([]Pollutant, 0, len(metadata))
	for i, m := range metadata {
		if i >= len(series) || len(series[i]) == 0 {
			continue
		}
		readings := make([]*float64, len(series[i]))
		for j, r := range series[i] {
			if r != nil {
				v := *r
				readings[j] = &v
			}
		}

		pollutants = append(pollutants, Pollutant{
			Name:     m.Name,
			Unit:     m.Unit,
			Grade:    m.Grade,
			Readings: readings,
		})
	}
	return AirStatus{
		StationAddress: station,
		ObservedAt:     observedAt,
		Pollutants:     pollutants,
	}
}
