package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Decimal is a money amount as the upstream API serializes it. The backend
// emits decimal fields as JSON strings ("12.50") while older deployments
// emit bare numbers; both decode to the same value here.
type Decimal float64

func (d *Decimal) UnmarshalJSON(data []byte) error {

	if string(data) == "null" {
		*d = 0

		return nil
	}

	raw := string(data)

	if len(raw) >= 2 && raw[0] == '"' {

		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decimal: invalid string form %s: %w", raw, err)
		}

		raw = s
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("decimal: cannot parse %q: %w", raw, err)
	}

	*d = Decimal(f)

	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(d))
}

func (d Decimal) Float64() float64 {
	return float64(d)
}
