package product

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The storefront and the admin panel are loose about payload types: stock
// arrives as a number, a numeric string or a {quantity,status} object;
// additionalImages as a string or an array; display_home and home_position
// as native values or strings. The input types below absorb those shapes at
// the boundary so the rest of the package only sees the canonical form.

// StockInput accepts a bare quantity or a stock object.
type StockInput struct {
	Quantity int
	Provided bool
}

func (s *StockInput) UnmarshalJSON(b []byte) error {
	s.Provided = true

	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		s.Quantity = clampQuantity(int(n))
		return nil
	}

	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		q, _ := strconv.Atoi(strings.TrimSpace(str))
		s.Quantity = clampQuantity(q)
		return nil
	}

	var obj struct {
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	s.Quantity = clampQuantity(coerceInt(obj.Quantity))
	return nil
}

// coerceInt reads a raw JSON value as an integer, accepting numbers and
// numeric strings; anything else becomes 0.
func coerceInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		v, _ := strconv.Atoi(strings.TrimSpace(str))
		return v
	}
	return 0
}

func clampQuantity(q int) int {
	if q < 0 {
		return 0
	}
	return q
}

// ImageList accepts a single string or an array of strings.
type ImageList struct {
	Values   []string
	Provided bool
}

func (l *ImageList) UnmarshalJSON(b []byte) error {
	l.Provided = true

	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		l.Values = []string{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	l.Values = many
	return nil
}

// FlexBool accepts true/false or their string forms.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		*f = FlexBool(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*f = FlexBool(s == "true")
	return nil
}

// FlexInt accepts a number or a numeric string; anything else becomes 0.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexInt(int(n))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	*f = FlexInt(v)
	return nil
}

// FlexFloat accepts a number or a numeric string.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	*f = FlexFloat(v)
	return nil
}

// Input is a product create/update payload after boundary normalization.
type Input struct {
	Name             string     `json:"name"`
	SmallDescription string     `json:"smallDescription"`
	Description      string     `json:"description"`
	Price            FlexFloat  `json:"price"`
	Image            string     `json:"image"`
	AdditionalImages ImageList  `json:"additionalImages"`
	Stock            StockInput `json:"stock"`
	DisplayHome      FlexBool   `json:"display_home"`
	HomePosition     FlexInt    `json:"home_position"`
}

// NormalizeImagePath keeps data URIs as-is and anchors bare filenames under
// /uploads/.
func NormalizeImagePath(p string) string {
	if p == "" || strings.HasPrefix(p, "data:image") || strings.HasPrefix(p, "/") {
		return p
	}
	return "/uploads/" + p
}
