package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Recode turns a loosely typed payload into T. The payload is either raw
// json or whatever a previous decode into `any` produced.
func Recode[T any](payload any) (T, error) {
	var result T
	var data []byte
	switch v := payload.(type) {
	case []byte:
		data = v
	case jsoniter.RawMessage:
		data = v
	default:
		raw, err := json.Marshal(payload)
		if err != nil {
			return result, errors.WithMessage(err, "marshal payload")
		}
		data = raw
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, errors.WithMessagef(err, "decode payload into %T", result)
	}
	return result, nil
}
