package calendar

// ColorScale maps a bound value to a color string. The layout package
// treats it as opaque; pkg/scales provides quantized implementations.
type ColorScale func(float64) string

// BindDays merges day-keyed data records into the layout's day cells and
// returns a new slice of augmented copies; the input days are never
// modified, so the layout they came from stays valid after binding.
//
// Every returned day starts with emptyColor. A record whose Day key
// matches a cell (exact YYYY-MM-DD string equality) sets the cell's
// value, its color via the scale and a reference to the record. When
// several records share a key the last one in input order wins. Records
// without a matching cell are ignored.
func BindDays(days []Day, data []Datum, scale ColorScale, emptyColor string) []Day {
	byDay := make(map[string]int, len(days))
	bound := make([]Day, len(days))
	for i, d := range days {
		d.Color = emptyColor
		d.Value = nil
		d.Data = nil
		bound[i] = d
		byDay[d.Day] = i
	}

	for i := range data {
		datum := data[i]
		idx, ok := byDay[datum.Day]
		if !ok {
			continue
		}
		v := datum.Value
		bound[idx].Value = &v
		bound[idx].Data = &datum
		if scale != nil {
			bound[idx].Color = scale(v)
		}
	}

	return bound
}
