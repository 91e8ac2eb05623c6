package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	apiconstraints "github.com/atacflux/atacflux/pkg/api/types/constraints"
)

func (c *client) ListConstraints(ctx context.Context) (apiconstraints.List, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("constraints"), nil)
	if err != nil {
		return apiconstraints.List{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiconstraints.List{}, err
	}
	defer resp.Body.Close()

	list := apiconstraints.List{}
	if err := unmarshalJSONResponse(resp, &list); err != nil {
		return apiconstraints.List{}, err
	}
	return list, nil
}

func (c *client) AddConstraint(ctx context.Context, add apiconstraints.AddRequest) (apiconstraints.Detail, error) {
	b, err := json.Marshal(add)
	if err != nil {
		return apiconstraints.Detail{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("constraints"), bytes.NewBuffer(b),
	)
	if err != nil {
		return apiconstraints.Detail{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiconstraints.Detail{}, err
	}
	defer resp.Body.Close()

	detail := apiconstraints.Detail{}
	if err := unmarshalJSONResponse(resp, &detail); err != nil {
		return apiconstraints.Detail{}, err
	}
	return detail, nil
}

func (c *client) RemoveConstraint(ctx context.Context, id string) (apiconstraints.List, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodDelete, c.apipath("constraints", id), nil,
	)
	if err != nil {
		return apiconstraints.List{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiconstraints.List{}, err
	}
	defer resp.Body.Close()

	list := apiconstraints.List{}
	if err := unmarshalJSONResponse(resp, &list); err != nil {
		return apiconstraints.List{}, err
	}
	return list, nil
}

func (c *client) ToggleConstraint(ctx context.Context, id string, enabled *bool) (apiconstraints.Detail, error) {
	b, err := json.Marshal(apiconstraints.ToggleRequest{Enabled: enabled})
	if err != nil {
		return apiconstraints.Detail{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPut, c.apipath("constraints", id, "enabled"), bytes.NewBuffer(b),
	)
	if err != nil {
		return apiconstraints.Detail{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiconstraints.Detail{}, err
	}
	defer resp.Body.Close()

	detail := apiconstraints.Detail{}
	if err := unmarshalJSONResponse(resp, &detail); err != nil {
		return apiconstraints.Detail{}, err
	}
	return detail, nil
}

func (c *client) ClearConstraints(ctx context.Context) (apiconstraints.List, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("constraints", "clear"), nil,
	)
	if err != nil {
		return apiconstraints.List{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiconstraints.List{}, err
	}
	defer resp.Body.Close()

	list := apiconstraints.List{}
	if err := unmarshalJSONResponse(resp, &list); err != nil {
		return apiconstraints.List{}, err
	}
	return list, nil
}

func (c *client) ApplyPreset(ctx context.Context, name string) (apiconstraints.ApplyResult, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("constraints", "presets", name), nil,
	)
	if err != nil {
		return apiconstraints.ApplyResult{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiconstraints.ApplyResult{}, err
	}
	defer resp.Body.Close()

	result := apiconstraints.ApplyResult{}
	if err := unmarshalJSONResponse(resp, &result); err != nil {
		return apiconstraints.ApplyResult{}, err
	}
	return result, nil
}

func (c *client) ExportConstraints(ctx context.Context) (apiconstraints.ShareToken, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.apipath("constraints", "export"), nil,
	)
	if err != nil {
		return apiconstraints.ShareToken{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiconstraints.ShareToken{}, err
	}
	defer resp.Body.Close()

	token := apiconstraints.ShareToken{}
	if err := unmarshalJSONResponse(resp, &token); err != nil {
		return apiconstraints.ShareToken{}, err
	}
	return token, nil
}

func (c *client) ImportConstraints(ctx context.Context, token string) (apiconstraints.List, error) {
	b, err := json.Marshal(apiconstraints.ImportRequest{Token: token})
	if err != nil {
		return apiconstraints.List{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("constraints", "import"), bytes.NewBuffer(b),
	)
	if err != nil {
		return apiconstraints.List{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiconstraints.List{}, err
	}
	defer resp.Body.Close()

	list := apiconstraints.List{}
	if err := unmarshalJSONResponse(resp, &list); err != nil {
		return apiconstraints.List{}, err
	}
	return list, nil
}
