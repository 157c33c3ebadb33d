package repository

import (
	"bytes"
	"encoding/json"

	"storegate/models"
)

// The backend does not wrap responses uniformly. Observed shapes for a
// collection under key "categories":
//
//	[ ... ]                                          bare array
//	{"success":true,"data":{"categories":[ ... ]}}   direct array
//	{"success":true,"data":{"categories":{"$values":[ ... ]}}}
//
// The last one is a reference-preserving serializer wrapper. DecodeList
// tries the shapes in that fixed order and degrades to an empty list when
// the expected field is absent; it never panics on any 2xx body.

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type valuesWrapper struct {
	Values json.RawMessage `json:"$values"`
}

func DecodeList(body []byte, key string, dest any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, dest); err != nil {
			return models.NewRemoteError(models.ErrServerError, "unrecognized response shape")
		}
		return nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return models.NewRemoteError(models.ErrServerError, "unrecognized response shape")
	}
	if env.Success != nil && !*env.Success {
		return models.NewRemoteError(models.ErrBadRequest, env.Message)
	}

	raw := fieldOf(env.Data, key)
	if raw == nil {
		return json.Unmarshal([]byte("[]"), dest)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, dest); err != nil {
			return models.NewRemoteError(models.ErrServerError, "unrecognized response shape")
		}
		return nil
	}

	var vw valuesWrapper
	if err := json.Unmarshal(raw, &vw); err == nil && vw.Values != nil {
		if err := json.Unmarshal(vw.Values, dest); err != nil {
			return models.NewRemoteError(models.ErrServerError, "unrecognized response shape")
		}
		return nil
	}
	return json.Unmarshal([]byte("[]"), dest)
}

// DecodeItem extracts a single record: data.<key>, then data itself, then
// the top-level key, in that order.
func DecodeItem(body []byte, key string, dest any) error {
	var env envelope
	if err := json.Unmarshal(bytes.TrimSpace(body), &env); err != nil {
		return models.NewRemoteError(models.ErrServerError, "unrecognized response shape")
	}
	if env.Success != nil && !*env.Success {
		return models.NewRemoteError(models.ErrBadRequest, env.Message)
	}

	if raw := fieldOf(env.Data, key); raw != nil {
		if err := json.Unmarshal(raw, dest); err == nil {
			return nil
		}
	}
	if env.Data != nil {
		if err := json.Unmarshal(env.Data, dest); err == nil {
			return nil
		}
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(body), &top); err == nil {
		if raw, ok := top[key]; ok {
			if err := json.Unmarshal(raw, dest); err == nil {
				return nil
			}
		}
	}
	return models.NewRemoteError(models.ErrServerError, "unrecognized response shape")
}

// CheckEnvelope rejects a 2xx body whose envelope reports failure. Used by
// mutations that do not need the payload back.
func CheckEnvelope(body []byte) error {
	var env envelope
	if err := json.Unmarshal(bytes.TrimSpace(body), &env); err != nil {
		// Bare bodies (empty, plain id) count as success for mutations.
		return nil
	}
	if env.Success != nil && !*env.Success {
		return models.NewRemoteError(models.ErrBadRequest, env.Message)
	}
	return nil
}

func fieldOf(data json.RawMessage, key string) json.RawMessage {
	if data == nil {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	return obj[key]
}

func envelopeMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(bytes.TrimSpace(body), &env); err != nil {
		return ""
	}
	return env.Message
}
