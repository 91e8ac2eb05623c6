package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apiconstraints "github.com/atacflux/atacflux/pkg/api/types/constraints"
	apierr "github.com/atacflux/atacflux/pkg/api/types/errors"
	"github.com/atacflux/atacflux/pkg/auth/share"
	"github.com/atacflux/atacflux/pkg/constraints"
	"github.com/atacflux/atacflux/pkg/db"
	"github.com/atacflux/atacflux/pkg/gem"
	"github.com/atacflux/atacflux/pkg/thermo"
)

// ListConstraintsHandler serves the stored constraint set. When a model
// is loaded the response also carries the presets it supports.
func ListConstraintsHandler(reg *gem.Registry, tstore *thermo.Store, store db.ConstraintInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		resp, err := constraintList(c, reg, tstore, store)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// AddConstraintHandler stores a new constraint. The id is optional and
// generated when omitted; posting a taken id is a conflict.
func AddConstraintHandler(store db.ConstraintInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		req := apiconstraints.AddRequest{}
		if err := decodeBody(c, &req); err != nil {
			return err
		}

		switch req.Type {
		case db.TypeReaction, db.TypeExchange:
			// ok
		default:
			return apierr.BadRequest(
				fmt.Sprintf(`type should be %q or %q`, db.TypeReaction, db.TypeExchange), nil,
			)
		}
		if req.Target == "" {
			return apierr.BadRequest("target is required", nil)
		}
		if req.Bounds == nil {
			return apierr.BadRequest("bounds is required: a number or a [lower, upper] pair", nil)
		}

		con := db.Constraint{
			ID:         req.ID,
			Type:       req.Type,
			Target:     req.Target,
			Lower:      req.Bounds.Lower,
			Upper:      req.Bounds.Upper,
			Label:      req.Label,
			Enabled:    true,
			BoundType:  req.BoundType,
			TargetInfo: req.TargetInfo,
		}
		if con.ID == "" {
			con.ID = uuid.NewString()
		}
		if con.Label == "" {
			con.Label = con.Target
		}

		if err := store.Add(c.Request().Context(), con); err != nil {
			if errors.Is(err, db.ErrExists) {
				return apierr.Conflict(fmt.Sprintf("constraint %s already exists", con.ID))
			}
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusCreated, constraints.ComposeDetail(con))
	}
}

// RemoveConstraintHandler deletes one constraint and returns the
// remaining set.
func RemoveConstraintHandler(store db.ConstraintInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")
		ctx := c.Request().Context()
		id := c.Param("id")

		if err := store.Remove(ctx, id); err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound(fmt.Sprintf("constraint %s not found", id))
			}
			return apierr.InternalServerError(err)
		}

		cons, err := store.List(ctx)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apiconstraints.List{
			Constraints: constraints.ComposeList(cons),
		})
	}
}

// ToggleConstraintHandler sets or flips the enabled state of one
// constraint. The body is optional: absent (or a null enabled) flips.
func ToggleConstraintHandler(store db.ConstraintInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")
		id := c.Param("id")

		req := apiconstraints.ToggleRequest{}
		if err := decodeBody(c, &req); err != nil {
			return err
		}

		con, err := store.Toggle(c.Request().Context(), id, req.Enabled)
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound(fmt.Sprintf("constraint %s not found", id))
			}
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, constraints.ComposeDetail(con))
	}
}

// ClearConstraintsHandler removes every stored constraint.
func ClearConstraintsHandler(store db.ConstraintInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		if err := store.Clear(c.Request().Context()); err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apiconstraints.List{
			Constraints: map[string]apiconstraints.Detail{},
		})
	}
}

// ApplyPresetHandler resolves a preset against the loaded model and
// stores its constraint. Reapplying overwrites the previous one rather
// than stacking a duplicate.
func ApplyPresetHandler(reg *gem.Registry, tstore *thermo.Store, store db.ConstraintInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")
		ctx := c.Request().Context()
		name := c.Param("name")

		var preset apiconstraints.Preset
		if err := reg.Read(func(v gem.View) error {
			p, ok := constraints.Preset(v.Model, tstore, name)
			if !ok {
				return apierr.NotFound(fmt.Sprintf("preset %s is not available for this model", name))
			}
			preset = p
			return nil
		}); err != nil {
			return asAPIError(err)
		}

		if err := store.Put(ctx, constraints.RecordOf(preset)); err != nil {
			return apierr.InternalServerError(err)
		}

		list, err := constraintList(c, reg, tstore, store)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, apiconstraints.ApplyResult{
			List:        list,
			Applied:     &preset.Constraint,
			DerivedFrom: preset.DerivedFrom,
		})
	}
}

// ExportConstraintsHandler signs the stored constraint set into a share
// token. signer may be nil when no secret is configured.
func ExportConstraintsHandler(store db.ConstraintInterface, signer *share.Signer) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		if signer == nil {
			return apierr.ServiceUnavailable("share tokens are disabled: set the share secret", nil)
		}

		cons, err := store.List(c.Request().Context())
		if err != nil {
			return apierr.InternalServerError(err)
		}

		token, err := signer.Export(constraints.ComposeList(cons))
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apiconstraints.ShareToken{Token: token})
	}
}

// ImportConstraintsHandler verifies a share token and stores the
// constraints it carries, overwriting on id collision. The whole set
// lands together or not at all.
func ImportConstraintsHandler(store db.ConstraintInterface, signer *share.Signer) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")
		ctx := c.Request().Context()

		if signer == nil {
			return apierr.ServiceUnavailable("share tokens are disabled: set the share secret", nil)
		}

		req := apiconstraints.ImportRequest{}
		if err := decodeBody(c, &req); err != nil {
			return err
		}
		if req.Token == "" {
			return apierr.BadRequest("token is required", nil)
		}

		imported, err := signer.Import(req.Token)
		if err != nil {
			if errors.Is(err, share.ErrInvalidToken) {
				return apierr.BadRequest("can not verify the share token", err)
			}
			return apierr.InternalServerError(err)
		}

		incoming := make([]db.Constraint, 0, len(imported))
		for _, detail := range imported {
			incoming = append(incoming, db.Constraint{
				ID:         detail.ID,
				Type:       detail.Type,
				Target:     detail.Target,
				Lower:      detail.Bounds.Lower,
				Upper:      detail.Bounds.Upper,
				Label:      detail.Label,
				Enabled:    detail.Enabled,
				BoundType:  detail.BoundType,
				TargetInfo: detail.TargetInfo,
			})
		}
		if err := store.PutAll(ctx, incoming); err != nil {
			return apierr.InternalServerError(err)
		}

		cons, err := store.List(ctx)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apiconstraints.List{
			Constraints: constraints.ComposeList(cons),
		})
	}
}

// constraintList assembles the List response: stored constraints always,
// presets only while a model is loaded.
func constraintList(c echo.Context, reg *gem.Registry, tstore *thermo.Store, store db.ConstraintInterface) (apiconstraints.List, error) {
	cons, err := store.List(c.Request().Context())
	if err != nil {
		return apiconstraints.List{}, apierr.InternalServerError(err)
	}

	resp := apiconstraints.List{Constraints: constraints.ComposeList(cons)}
	_ = reg.Read(func(v gem.View) error {
		resp.Presets = constraints.AvailablePresets(v.Model, tstore)
		return nil
	})
	return resp, nil
}
