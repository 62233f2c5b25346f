package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"posrelay/internal/core/domain/model/kernel"
	"posrelay/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// errInvalidJSON marks a body that could not be decoded at all.
var errInvalidJSON = errors.New("invalid JSON")

// createOrderRequest keeps every field raw so numbers and numeric strings can
// both be accepted.
type createOrderRequest struct {
	TableNumber json.RawMessage `json:"tableNumber"`
	Items       json.RawMessage `json:"items"`
	Notes       json.RawMessage `json:"notes"`
	TotalPrice  json.RawMessage `json:"totalPrice"`
}

type updateStatusRequest struct {
	Status json.RawMessage `json:"status"`
}

// decodeBody reads a JSON object. An empty body decodes as {}.
func decodeBody(r io.Reader, dst any) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	return nil
}

// scalar decodes raw into a string, json.Number, bool or nil. Objects and
// arrays are reported with ok == false.
func scalar(raw json.RawMessage) (any, bool) {
	if len(raw) == 0 {
		return nil, true
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	switch v.(type) {
	case nil, string, json.Number, bool:
		return v, true
	default:
		return nil, false
	}
}

// parseTableNumber accepts a JSON number or a numeric string holding a
// positive integer.
func parseTableNumber(raw json.RawMessage) (int, error) {
	invalid := func(cause error) error {
		return errs.NewValueIsInvalidErrorWithCause("tableNumber", cause)
	}

	v, ok := scalar(raw)
	if !ok {
		return 0, invalid(errors.New("must be a number"))
	}

	var text string
	switch t := v.(type) {
	case json.Number:
		text = t.String()
	case string:
		text = strings.TrimSpace(t)
	default:
		return 0, invalid(errors.New("must be a number"))
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, invalid(fmt.Errorf("%q is not a number", text))
	}
	if f != math.Trunc(f) || f <= 0 || f > math.MaxInt32 {
		return 0, invalid(fmt.Errorf("%s is not a positive integer", text))
	}
	return int(f), nil
}

// parseItems stringifies scalar entries. Anything that is not an array yields
// no items, which the command rejects.
func parseItems(raw json.RawMessage) []string {
	var entries []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &entries) != nil {
		return nil
	}

	items := make([]string, 0, len(entries))
	for _, entry := range entries {
		v, ok := scalar(entry)
		if !ok {
			continue
		}
		if s, ok := stringify(v); ok {
			items = append(items, s)
		}
	}
	return items
}

func parseNotes(raw json.RawMessage) (string, error) {
	v, ok := scalar(raw)
	if !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("notes", errors.New("must be a string"))
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("notes", errors.New("must be a string"))
	}
}

// parseTotalPrice accepts a number or numeric string. Missing, null and blank
// values mean zero.
func parseTotalPrice(raw json.RawMessage) (kernel.Price, error) {
	v, ok := scalar(raw)
	if !ok {
		return kernel.Price{}, errs.NewValueIsInvalidErrorWithCause("totalPrice", errors.New("must be a number"))
	}

	var text string
	switch t := v.(type) {
	case nil:
		return kernel.ZeroPrice, nil
	case json.Number:
		text = t.String()
	case string:
		text = strings.TrimSpace(t)
		if text == "" {
			return kernel.ZeroPrice, nil
		}
	default:
		return kernel.Price{}, errs.NewValueIsInvalidErrorWithCause("totalPrice", errors.New("must be a number"))
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return kernel.Price{}, errs.NewValueIsInvalidErrorWithCause("totalPrice", fmt.Errorf("%q is not a number", text))
	}
	return kernel.NewPrice(amount)
}

// parseStatus stringifies the status field. Missing and null become "", which
// the command reports as required.
func parseStatus(raw json.RawMessage) string {
	v, ok := scalar(raw)
	if !ok {
		return string(raw)
	}
	s, _ := stringify(v)
	return s
}

func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
