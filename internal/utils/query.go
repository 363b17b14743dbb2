package utils

import (
	"net/url"
	"strconv"
)

// Query builds url.Values from optional parameters, skipping nil and zero
// values so unset filters are not sent to the backend.
func Query(params map[string]any) url.Values {
	values := url.Values{}
	for k, v := range params {
		switch t := v.(type) {
		case nil:
		case string:
			if t != "" {
				values.Set(k, t)
			}
		case *string:
			if t != nil && *t != "" {
				values.Set(k, *t)
			}
		case int:
			if t != 0 {
				values.Set(k, strconv.Itoa(t))
			}
		case *int:
			if t != nil {
				values.Set(k, strconv.Itoa(*t))
			}
		case int64:
			if t != 0 {
				values.Set(k, strconv.FormatInt(t, 10))
			}
		case bool:
			values.Set(k, strconv.FormatBool(t))
		}
	}
	return values
}
