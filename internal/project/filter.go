package project

import (
	"bytes"
	"encoding/json"

	"github.com/itchyny/gojq"
	"github.com/pkg/errors"
)

// Filter applies a jq expression to the document and returns the result. String results are
// returned verbatim; everything else is JSON encoded. Multiple results are newline separated.
func (d Document) Filter(filter string) ([]byte, error) {
	query, err := gojq.Parse(filter)
	if err != nil {
		return nil, errors.Wrap(err, "parse jq filter")
	}

	// Round trip through JSON so gojq sees plain maps and slices.
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}

	input := make(map[string]interface{})
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, err
	}

	var result bytes.Buffer

	iter := query.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}

		if v == nil {
			continue
		}

		switch vv := v.(type) {
		case error:
			return nil, errors.Wrap(vv, "error while filtering with jq")
		case string:
			result.WriteString(vv)
		default:
			marshalled, err := json.Marshal(vv)
			if err != nil {
				return nil, errors.Wrap(err, "error marshalling jq result")
			}
			result.Write(marshalled)
		}
		result.WriteRune('\n')
	}

	return bytes.TrimSuffix(result.Bytes(), []byte("\n")), nil
}
