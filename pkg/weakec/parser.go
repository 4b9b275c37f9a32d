package weakec

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/maelab/maetool/pkg/curve"
)

// AnalysisRequest is the wire form of an analyze call: a curve, a base
// point, a target point, and the search bounds.
type AnalysisRequest struct {
	P  *big.Int
	A  *big.Int
	B  *big.Int
	Gx *big.Int
	Gy *big.Int
	Qx *big.Int
	Qy *big.Int

	OrderSearchBound int
	DlogBound        int
}

// Curve builds the request's curve.
func (r *AnalysisRequest) Curve() *curve.Curve {
	return curve.NewCurve(r.P, r.A, r.B)
}

// G returns the base point.
func (r *AnalysisRequest) G() curve.Point {
	return curve.NewPoint(r.Gx, r.Gy)
}

// Q returns the target point.
func (r *AnalysisRequest) Q() curve.Point {
	return curve.NewPoint(r.Qx, r.Qy)
}

// ParseAnalysisRequest reads an analysis request from a JSON file.
//
// Expected shape, with integers as decimal strings, 0x-prefixed hex
// strings, or plain numbers:
//
//	{"p": 233, "a": 1, "b": 1,
//	 "gx": 0, "gy": 1, "qx": "0xa6", "qy": "48",
//	 "order_search_bound": 500, "dlog_bound": 5000}
func ParseAnalysisRequest(path string) (*AnalysisRequest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening request file")
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber()

	var raw map[string]interface{}
	if err := decoder.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decoding request JSON")
	}

	req := &AnalysisRequest{}
	fields := []struct {
		name string
		dst  **big.Int
	}{
		{"p", &req.P}, {"a", &req.A}, {"b", &req.B},
		{"gx", &req.Gx}, {"gy", &req.Gy},
		{"qx", &req.Qx}, {"qy", &req.Qy},
	}
	for _, f := range fields {
		val, ok := raw[f.name]
		if !ok {
			return nil, errors.Errorf("missing field %q", f.name)
		}
		n, err := parseBigInt(val)
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", f.name)
		}
		*f.dst = n
	}

	req.OrderSearchBound = 5000
	if val, ok := raw["order_search_bound"]; ok {
		n, err := parseBigInt(val)
		if err != nil {
			return nil, errors.Wrap(err, "field order_search_bound")
		}
		req.OrderSearchBound = int(n.Int64())
	}
	req.DlogBound = 100000
	if val, ok := raw["dlog_bound"]; ok {
		n, err := parseBigInt(val)
		if err != nil {
			return nil, errors.Wrap(err, "field dlog_bound")
		}
		req.DlogBound = int(n.Int64())
	}

	return req, nil
}

// parseBigInt accepts 0x-prefixed hex strings, decimal strings, and JSON
// numbers.
func parseBigInt(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s = s[2:]
			if len(s)%2 == 1 {
				s = "0" + s
			}
			raw, err := hex.DecodeString(s)
			if err != nil {
				return nil, errors.Errorf("invalid hex number: %s", v)
			}
			return new(big.Int).SetBytes(raw), nil
		}
		z, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, errors.Errorf("invalid number: %s", v)
		}
		return z, nil

	case json.Number:
		z, ok := new(big.Int).SetString(string(v), 10)
		if !ok {
			return nil, errors.Errorf("invalid number: %s", v)
		}
		return z, nil

	case float64:
		return big.NewInt(int64(v)), nil

	default:
		return nil, errors.Errorf("unsupported number type %T", val)
	}
}
