package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apierr "github.com/atacflux/atacflux/pkg/api/types/errors"
)

// unmarshalJSONResponse decodes a 2xx response into v. Other status
// codes are turned into errors carrying the server's reason and advice
// when the body is a structured error message.
func unmarshalJSONResponse[T any](resp *http.Response, v *T) error {
	if resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf(
				"unexpected response: %w (status code = %d)", err, resp.StatusCode,
			)
		}
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf(
			"server error (status code = %d); cannot read server message: %w",
			resp.StatusCode, err,
		)
	}

	var message apierr.ErrorMessage
	if err := json.Unmarshal(body, &message); err == nil {
		return fmt.Errorf("server error (status code = %d): %s", resp.StatusCode, message.String())
	}
	return fmt.Errorf("server error (status code = %d): %s", resp.StatusCode, string(body))
}
