package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	apiconstraints "github.com/atacflux/atacflux/pkg/api/types/constraints"
	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
)

func (c *client) LoadModel(ctx context.Context, path string) (apigem.ModelInfo, error) {
	b, err := json.Marshal(apigem.LoadRequest{Path: path})
	if err != nil {
		return apigem.ModelInfo{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("model", "load"), bytes.NewBuffer(b),
	)
	if err != nil {
		return apigem.ModelInfo{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apigem.ModelInfo{}, err
	}
	defer resp.Body.Close()

	info := apigem.ModelInfo{}
	if err := unmarshalJSONResponse(resp, &info); err != nil {
		return apigem.ModelInfo{}, err
	}
	return info, nil
}

func (c *client) ModelInfo(ctx context.Context) (apigem.ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("model"), nil)
	if err != nil {
		return apigem.ModelInfo{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apigem.ModelInfo{}, err
	}
	defer resp.Body.Close()

	info := apigem.ModelInfo{}
	if err := unmarshalJSONResponse(resp, &info); err != nil {
		return apigem.ModelInfo{}, err
	}
	return info, nil
}

func (c *client) Compartments(ctx context.Context) (apigem.CompartmentList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("compartments"), nil)
	if err != nil {
		return apigem.CompartmentList{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apigem.CompartmentList{}, err
	}
	defer resp.Body.Close()

	list := apigem.CompartmentList{}
	if err := unmarshalJSONResponse(resp, &list); err != nil {
		return apigem.CompartmentList{}, err
	}
	return list, nil
}

func (c *client) Optimize(ctx context.Context) (apiconstraints.OptimizeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apipath("optimize"), nil)
	if err != nil {
		return apiconstraints.OptimizeResult{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apiconstraints.OptimizeResult{}, err
	}
	defer resp.Body.Close()

	result := apiconstraints.OptimizeResult{}
	if err := unmarshalJSONResponse(resp, &result); err != nil {
		return apiconstraints.OptimizeResult{}, err
	}
	return result, nil
}
