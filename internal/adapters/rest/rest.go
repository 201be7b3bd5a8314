// Package rest implementa los repositorios de dominio sobre la API REST del backend.
package rest

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// params arma query params omitiendo vacíos.
type params url.Values

func (p params) set(k, v string) params {
	if v != "" {
		url.Values(p).Set(k, v)
	}
	return p
}

func (p params) setID(k string, id int64) params {
	if id != 0 {
		url.Values(p).Set(k, itoa(id))
	}
	return p
}

func (p params) setBool(k string, b bool) params {
	if b {
		url.Values(p).Set(k, "true")
	}
	return p
}

func (p params) values() url.Values {
	return url.Values(p)
}

// flexBool acepta `true` o un objeto con "disponible" (el backend cambió el contrato entre versiones).
func flexBool(raw json.RawMessage, field string) (bool, string, bool) {
	raw = bytes.TrimSpace(raw)
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, "", true
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false, "", false
	}
	v, ok := obj[field]
	if !ok || json.Unmarshal(v, &b) != nil {
		return false, "", false
	}
	var msg string
	for _, k := range []string{"mensaje", "message"} {
		if m, ok := obj[k]; ok {
			_ = json.Unmarshal(m, &msg)
			break
		}
	}
	return b, msg, true
}
