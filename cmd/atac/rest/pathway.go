package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
)

func (c *client) ListReactions(ctx context.Context, q ReactionQuery) (apigem.ReactionPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("reactions"), nil)
	if err != nil {
		return apigem.ReactionPage{}, err
	}

	query := req.URL.Query()
	if q.Query != "" {
		query.Add("q", q.Query)
	}
	if q.Limit > 0 {
		query.Add("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		query.Add("offset", strconv.Itoa(q.Offset))
	}
	if q.NonzeroFlux {
		query.Add("nonzero_flux", "true")
	}
	req.URL.RawQuery = query.Encode()

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apigem.ReactionPage{}, err
	}
	defer resp.Body.Close()

	page := apigem.ReactionPage{}
	if err := unmarshalJSONResponse(resp, &page); err != nil {
		return apigem.ReactionPage{}, err
	}
	return page, nil
}

func (c *client) GetReaction(ctx context.Context, rxnID string) (apigem.ReactionDetail, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.apipath("reactions", rxnID), nil,
	)
	if err != nil {
		return apigem.ReactionDetail{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apigem.ReactionDetail{}, err
	}
	defer resp.Body.Close()

	detail := apigem.ReactionDetail{}
	if err := unmarshalJSONResponse(resp, &detail); err != nil {
		return apigem.ReactionDetail{}, err
	}
	return detail, nil
}

func (c *client) GetMetabolite(ctx context.Context, metID string) (apigem.MetaboliteDetail, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.apipath("metabolites", metID), nil,
	)
	if err != nil {
		return apigem.MetaboliteDetail{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apigem.MetaboliteDetail{}, err
	}
	defer resp.Body.Close()

	detail := apigem.MetaboliteDetail{}
	if err := unmarshalJSONResponse(resp, &detail); err != nil {
		return apigem.MetaboliteDetail{}, err
	}
	return detail, nil
}

func (c *client) Subsystems(ctx context.Context) (apigem.SubsystemList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apipath("subsystems"), nil)
	if err != nil {
		return apigem.SubsystemList{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apigem.SubsystemList{}, err
	}
	defer resp.Body.Close()

	list := apigem.SubsystemList{}
	if err := unmarshalJSONResponse(resp, &list); err != nil {
		return apigem.SubsystemList{}, err
	}
	return list, nil
}

func (c *client) SubsystemReactions(ctx context.Context, name string) (apigem.SubsystemDetail, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.apipath("subsystems", url.PathEscape(name)), nil,
	)
	if err != nil {
		return apigem.SubsystemDetail{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apigem.SubsystemDetail{}, err
	}
	defer resp.Body.Close()

	detail := apigem.SubsystemDetail{}
	if err := unmarshalJSONResponse(resp, &detail); err != nil {
		return apigem.SubsystemDetail{}, err
	}
	return detail, nil
}

func (c *client) SearchReactions(ctx context.Context, q SearchQuery) (apigem.ReactionSearchResult, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.apipath("search", "reactions"), nil,
	)
	if err != nil {
		return apigem.ReactionSearchResult{}, err
	}
	req.URL.RawQuery = searchParams(q).Encode()

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apigem.ReactionSearchResult{}, err
	}
	defer resp.Body.Close()

	result := apigem.ReactionSearchResult{}
	if err := unmarshalJSONResponse(resp, &result); err != nil {
		return apigem.ReactionSearchResult{}, err
	}
	return result, nil
}

func (c *client) SearchMetabolites(ctx context.Context, q SearchQuery) (apigem.MetaboliteSearchResult, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.apipath("search", "metabolites"), nil,
	)
	if err != nil {
		return apigem.MetaboliteSearchResult{}, err
	}
	req.URL.RawQuery = searchParams(q).Encode()

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apigem.MetaboliteSearchResult{}, err
	}
	defer resp.Body.Close()

	result := apigem.MetaboliteSearchResult{}
	if err := unmarshalJSONResponse(resp, &result); err != nil {
		return apigem.MetaboliteSearchResult{}, err
	}
	return result, nil
}

func searchParams(q SearchQuery) url.Values {
	params := url.Values{}
	if q.Query != "" {
		params.Add("q", q.Query)
	}
	if q.Compartment != "" {
		params.Add("compartment", q.Compartment)
	}
	if q.Limit > 0 {
		params.Add("limit", strconv.Itoa(q.Limit))
	}
	return params
}

func (c *client) SearchAnnotations(ctx context.Context, query string) (apigem.AnnotationSearchResult, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.apipath("search", "annotations"), nil,
	)
	if err != nil {
		return apigem.AnnotationSearchResult{}, err
	}

	q := req.URL.Query()
	q.Add("q", query)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return apigem.AnnotationSearchResult{}, err
	}
	defer resp.Body.Close()

	result := apigem.AnnotationSearchResult{}
	if err := unmarshalJSONResponse(resp, &result); err != nil {
		return apigem.AnnotationSearchResult{}, err
	}
	return result, nil
}
