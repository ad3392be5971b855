package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
)

type Parameter map[string]string

func (p Parameter) ToReader() (io.Reader, error) {
	return strings.NewReader(p.Encode()), nil
}

func (p Parameter) Encode() string {
	var parameters []string
	for key, value := range p {
		parameters = append(parameters, key+"="+url.QueryEscape(value))
	}
	sort.Strings(parameters)
	return strings.Join(parameters, "&")
}

type JSON map[string]any

type Array []JSON

func (j JSON) ToReader() (io.Reader, error) {
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return bytes.NewBuffer(b), nil
}

func (j JSON) Get(key string) (any, error) {
	value, ok := j[key]
	if !ok {
		return nil, fmt.Errorf("not found field %s", key)
	}

	return value, nil
}

func (j JSON) GetJSON(key string) (JSON, error) {
	value, err := j.Get(key)
	if err != nil {
		return nil, err
	}

	if value == nil {
		return nil, nil
	}

	if m, ok := value.(map[string]any); ok {
		return JSON(m), nil
	}

	return nil, fmt.Errorf("invalid type of field %s (%T)", key, value)
}

func (j JSON) GetString(key string) (string, error) {
	value, err := j.Get(key)
	if err != nil {
		return "", err
	}

	if s, ok := value.(string); ok {
		return s, nil
	}

	return "", fmt.Errorf("invalid type of field %s (%T)", key, value)
}

func (j JSON) GetBool(key string) (bool, error) {
	value, err := j.Get(key)
	if err != nil {
		return false, err
	}

	if value == nil {
		return false, nil
	}

	if b, ok := value.(bool); ok {
		return b, nil
	}

	return false, fmt.Errorf("invalid type of field %s (%T)", key, value)
}

func (j JSON) GetArray(key string) (Array, error) {
	value, err := j.Get(key)
	if err != nil {
		return nil, err
	}

	if value == nil {
		return nil, nil
	}

	raw, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid type of field %s (%T)", key, value)
	}

	result := make(Array, 0, len(raw))
	for i := range raw {
		m, ok := raw[i].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid element %d of field %s (%T)", i, key, raw[i])
		}
		result = append(result, JSON(m))
	}

	return result, nil
}

func bytesToJSON(b []byte) (JSON, error) {
	result := JSON{}
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func bytesToArray(b []byte) (Array, error) {
	result := []map[string]any{}
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, err
	}

	array := make(Array, 0, len(result))
	for i := range result {
		array = append(array, JSON(result[i]))
	}
	return array, nil
}
