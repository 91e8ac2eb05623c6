package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	apierr "github.com/atacflux/atacflux/pkg/api/types/errors"
	apigem "github.com/atacflux/atacflux/pkg/api/types/gem"
	"github.com/atacflux/atacflux/pkg/gem"
	"github.com/atacflux/atacflux/pkg/pathway"
)

// LoadModelHandler loads (or reloads) the model. The request body may
// name a file; otherwise the configured model path, then the default
// search locations are tried. onLoad is called with the model info
// after a successful load (nil is fine).
func LoadModelHandler(reg *gem.Registry, configured string, onLoad func(apigem.ModelInfo)) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		req := apigem.LoadRequest{}
		if err := decodeBody(c, &req); err != nil {
			return err
		}

		path := req.Path
		if path == "" {
			path = configured
		}

		if _, err := reg.Load(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return apierr.NewErrorMessage(
					http.StatusNotFound,
					"model file not found",
					apierr.WithAdvice("place a COBRA JSON export at models/yeast-GEM.json, or pass its path"),
					apierr.WithError(err),
				)
			}
			return apierr.BadRequest("can not load the model", err)
		}

		info := modelInfo(reg)
		if onLoad != nil {
			onLoad(info)
		}
		return c.JSON(http.StatusOK, info)
	}
}

// ModelInfoHandler reports the loaded model.
func ModelInfoHandler(reg *gem.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		if !reg.Loaded() {
			return apierr.NoModel()
		}
		return c.JSON(http.StatusOK, modelInfo(reg))
	}
}

// CompartmentsHandler lists compartments with counts and badge colors.
func CompartmentsHandler(reg *gem.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		var resp apigem.CompartmentList
		if err := reg.Read(func(v gem.View) error {
			resp = pathway.Compartments(v.Model)
			return nil
		}); err != nil {
			return asAPIError(err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func modelInfo(reg *gem.Registry) apigem.ModelInfo {
	id, reactions, metabolites, genes, path, _ := reg.Info()
	return apigem.ModelInfo{
		ID:          id,
		Reactions:   reactions,
		Metabolites: metabolites,
		Genes:       genes,
		Path:        path,
	}
}

// decodeBody reads a JSON body strictly. An empty body leaves dest
// untouched, so handlers can treat bodies as optional.
func decodeBody(c echo.Context, dest any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apierr.BadRequest("can not parse the request body as JSON", err)
	}
	return nil
}

// asAPIError maps domain errors shared by the model-reading handlers.
func asAPIError(err error) error {
	if errors.Is(err, gem.ErrNoModel) {
		return apierr.NoModel()
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return apierr.InternalServerError(err)
}
