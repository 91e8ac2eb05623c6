package rest

import (
	"context"
	"net/http"

	apithermo "github.com/atacflux/atacflux/pkg/api/types/thermo"
)

func (c *client) ThermoStatus(ctx context.Context) (apithermo.Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("thermo", "status"), nil)
	if err != nil {
		return apithermo.Status{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apithermo.Status{}, err
	}
	defer resp.Body.Close()

	status := apithermo.Status{}
	if err := unmarshalJSONResponse(resp, &status); err != nil {
		return apithermo.Status{}, err
	}
	return status, nil
}

func (c *client) ThermoReaction(ctx context.Context, rxnID string) (apithermo.Reaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("thermo", rxnID), nil)
	if err != nil {
		return apithermo.Reaction{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apithermo.Reaction{}, err
	}
	defer resp.Body.Close()

	entry := apithermo.Reaction{}
	if err := unmarshalJSONResponse(resp, &entry); err != nil {
		return apithermo.Reaction{}, err
	}
	return entry, nil
}
