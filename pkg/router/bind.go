package router

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/mitchellh/mapstructure"
)

func bindRequest(req *http.Request, method string, out any) error {
	if method == http.MethodGet {
		return bindQuery(req, out)
	}

	return bindBody(req, out)
}

func bindQuery(req *http.Request, out any) error {
	values := map[string]string{}
	for key, value := range req.URL.Query() {
		if len(value) > 0 {
			values[key] = value[0]
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(values)
}

func bindBody(req *http.Request, out any) error {
	if err := json.NewDecoder(req.Body).Decode(out); err != nil && err != io.EOF {
		return err
	}

	return nil
}
