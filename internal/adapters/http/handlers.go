package http

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/samirrijal/isstracker/internal/core/domain"
)

// DatasetHandler returns the entire held dataset.
func DatasetHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ds, err := deps.Data.Dataset(c.UserContext())
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(ds)
	}
}

// EpochsHandler lists epochs, optionally sliced by offset and limit.
func EpochsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Data presence is checked before parameters.
		if !deps.Data.Loaded() {
			return errFromDomain(c, domain.ErrDataNotFound)
		}

		offset, err := queryInt(c, "offset", false)
		if err != nil {
			return errBadRequest(c, "offset value must be an integer")
		}
		limit, err := queryInt(c, "limit", true)
		if err != nil {
			return errBadRequest(c, "limit value must be an integer")
		}

		epochs, err := deps.Epochs.Epochs(c.UserContext(), offset, limit)
		if err != nil {
			return errFromDomain(c, err)
		}
		if total, err := deps.Epochs.Count(c.UserContext()); err == nil {
			setEpochLinkHeaders(c, offset, limit, total)
		}
		return c.JSON(epochs)
	}
}

// StateVectorHandler returns the state vector for one epoch.
func StateVectorHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sv, err := deps.Epochs.StateVector(c.UserContext(), epochParam(c))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(sv)
	}
}

// SpeedHandler returns the instantaneous speed at one epoch.
func SpeedHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		speed, err := deps.Epochs.Speed(c.UserContext(), epochParam(c))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(speed)
	}
}

// LocationHandler returns latitude, longitude, altitude, place and speed
// at one epoch.
func LocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := deps.Locations.Locate(c.UserContext(), epochParam(c))
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(report)
	}
}

// NowHandler returns the location at the most recent epoch.
func NowHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := deps.Locations.Now(c.UserContext())
		if err != nil {
			return errFromDomain(c, err)
		}
		c.Set("Cache-Control", "no-cache")
		return c.JSON(report)
	}
}

// CommentHandler returns the comment lines of the dataset.
func CommentHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		comments, err := deps.Data.Comments(c.UserContext())
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(comments)
	}
}

// HeaderHandler returns the dataset header.
func HeaderHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header, err := deps.Data.Header(c.UserContext())
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(header)
	}
}

// MetadataHandler returns the dataset metadata.
func MetadataHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		meta, err := deps.Data.Metadata(c.UserContext())
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(meta)
	}
}

// PostDataHandler reloads the dataset from the feed.
func PostDataHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ds, err := deps.Data.Reload(c.UserContext())
		if err != nil {
			return errFromDomain(c, err)
		}
		LoggerFromCtx(c.UserContext()).Info("data reloaded", "epochs", len(ds.StateVectors))
		return c.JSON(fiber.Map{
			"message": "Data reloaded",
			"epochs":  len(ds.StateVectors),
		})
	}
}

// DeleteDataHandler clears the dataset.
func DeleteDataHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deps.Data.Clear(c.UserContext())
		LoggerFromCtx(c.UserContext()).Info("data deleted")
		return c.JSON(fiber.Map{"message": "Data deleted"})
	}
}

// epochParam returns the unescaped :epoch route parameter.
func epochParam(c *fiber.Ctx) string {
	raw := c.Params("epoch")
	if epoch, err := url.PathUnescape(raw); err == nil {
		return epoch
	}
	return raw
}

// queryInt parses an optional integer query parameter. An absent parameter
// yields nil. When emptyIsUnset is set, "name=" also yields nil; otherwise
// an empty value is a parse error. Surrounding whitespace is ignored, but a
// value that is only whitespace is a parse error.
func queryInt(c *fiber.Ctx, name string, emptyIsUnset bool) (*int, error) {
	if !c.Context().QueryArgs().Has(name) {
		return nil, nil
	}
	raw := c.Query(name)
	if raw == "" && emptyIsUnset {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	return &v, nil
}
