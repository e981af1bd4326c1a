package property

import "slices"

// Panel is the state of the filter panel controls. It is kept apart from
// Filters because the controls always show a value (the range bounds) even
// when the corresponding filter is undefined, and because the checkbox
// selection and the custom codes text both write the same filter field.
type Panel struct {
	TempRange     [2]float64
	HumidityRange [2]float64
	Selected      []int
	Custom        string
}

// NewPanel initialises the controls from an existing snapshot.
func NewPanel(f Filters) Panel {
	p := Panel{
		TempRange:     [2]float64{orDefault(f.MinTemp, DefaultMinTemp), orDefault(f.MaxTemp, DefaultMaxTemp)},
		HumidityRange: [2]float64{orDefault(f.MinHumidity, DefaultMinHumidity), orDefault(f.MaxHumidity, DefaultMaxHumidity)},
	}
	if f.WeatherCodes != nil {
		p.Selected = ParseWeatherCodes(*f.WeatherCodes)
	}
	return p
}

// SetTemperature moves the temperature range and returns the matching update.
func (p *Panel) SetTemperature(lo, hi float64) Patch {
	p.TempRange = [2]float64{lo, hi}
	return Patch{Filters: Filters{MinTemp: Float(lo), MaxTemp: Float(hi)}}
}

// SetHumidity moves the humidity range and returns the matching update.
func (p *Panel) SetHumidity(lo, hi float64) Patch {
	p.HumidityRange = [2]float64{lo, hi}
	return Patch{Filters: Filters{MinHumidity: Float(lo), MaxHumidity: Float(hi)}}
}

// ToggleCode checks or unchecks a catalog code. The update carries the
// selected codes in selection order, or unsets the field once none is left.
func (p *Panel) ToggleCode(code int, checked bool) Patch {
	idx := slices.Index(p.Selected, code)
	switch {
	case checked && idx < 0:
		p.Selected = append(slices.Clone(p.Selected), code)
	case !checked && idx >= 0:
		p.Selected = slices.Delete(slices.Clone(p.Selected), idx, idx+1)
	}
	if len(p.Selected) == 0 {
		return Patch{Unset: []Field{FieldWeatherCodes}}
	}
	return Patch{Filters: Filters{WeatherCodes: String(JoinWeatherCodes(p.Selected))}}
}

// SetCustomCodes overrides the code filter with free text, passed through
// unparsed. Empty text unsets the field.
func (p *Panel) SetCustomCodes(value string) Patch {
	p.Custom = value
	if value == "" {
		return Patch{Unset: []Field{FieldWeatherCodes}}
	}
	return Patch{Filters: Filters{WeatherCodes: String(value)}}
}

// Follow moves the controls touched by an update made outside the panel to
// match merged, the filters after the update. Other controls are unchanged.
func (p *Panel) Follow(patch Patch, merged Filters) {
	if patch.Touches(FieldMinTemp) || patch.Touches(FieldMaxTemp) {
		p.TempRange = [2]float64{orDefault(merged.MinTemp, DefaultMinTemp), orDefault(merged.MaxTemp, DefaultMaxTemp)}
	}
	if patch.Touches(FieldMinHumidity) || patch.Touches(FieldMaxHumidity) {
		p.HumidityRange = [2]float64{orDefault(merged.MinHumidity, DefaultMinHumidity), orDefault(merged.MaxHumidity, DefaultMaxHumidity)}
	}
	if patch.Touches(FieldWeatherCodes) {
		p.Selected = nil
		p.Custom = ""
		if merged.WeatherCodes != nil {
			p.Selected = ParseWeatherCodes(*merged.WeatherCodes)
		}
	}
}

// IsSelected reports whether the checkbox for code is checked.
func (p Panel) IsSelected(code int) bool {
	return slices.Contains(p.Selected, code)
}

// Reset restores every control to its default.
func (p *Panel) Reset() {
	*p = Panel{
		TempRange:     [2]float64{DefaultMinTemp, DefaultMaxTemp},
		HumidityRange: [2]float64{DefaultMinHumidity, DefaultMaxHumidity},
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
