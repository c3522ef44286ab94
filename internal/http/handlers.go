package http

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/facility"
	"github.com/wattr-labs/wattr-demo/internal/service"
	"github.com/wattr-labs/wattr-demo/internal/store"
)

func Register(app *fiber.App, svcs *service.Services, contactLimiter *RateLimiter) {
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	app.Get("/controls", func(c *fiber.Ctx) error {
		return c.JSON(svcs.Controls.Get())
	})
	app.Patch("/controls", func(c *fiber.Ctx) error {
		var u store.Update
		if err := c.BodyParser(&u); err != nil {
			return fail(c, fiber.StatusBadRequest, err)
		}
		st, err := svcs.Controls.Update(u)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err)
		}
		return c.JSON(st)
	})

	fac := app.Group("/facility")
	fac.Get("/racks", withOverrides(func(c *fiber.Ctx, o service.Overrides) error {
		return c.JSON(svcs.Facility.Racks(o))
	}))
	fac.Get("/racks/:id", withOverrides(func(c *fiber.Ctx, o service.Overrides) error {
		rv, err := svcs.Facility.Rack(c.Params("id"), o)
		if err != nil {
			return fail(c, statusFor(err), err)
		}
		return c.JSON(rv)
	}))
	fac.Post("/racks/:id/select", func(c *fiber.Ctx) error {
		st, err := svcs.Facility.Select(c.Params("id"))
		if err != nil {
			return fail(c, statusFor(err), err)
		}
		return c.JSON(st)
	})
	fac.Get("/plant", func(c *fiber.Ctx) error {
		return c.JSON(svcs.Facility.Plant())
	})

	app.Get("/dashboard", withOverrides(func(c *fiber.Ctx, o service.Overrides) error {
		return c.JSON(svcs.Dashboard.Snapshot(o))
	}))
	dash := app.Group("/dashboard")
	dash.Get("/timeseries", withOverrides(func(c *fiber.Ctx, o service.Overrides) error {
		return c.JSON(svcs.Dashboard.TimeSeries(o))
	}))
	dash.Get("/racks", withOverrides(func(c *fiber.Ctx, o service.Overrides) error {
		return c.JSON(svcs.Dashboard.Grid(o))
	}))
	dash.Get("/kpis", withOverrides(func(c *fiber.Ctx, o service.Overrides) error {
		return c.JSON(svcs.Dashboard.KPIs(o))
	}))
	dash.Get("/alerts", withOverrides(func(c *fiber.Ctx, o service.Overrides) error {
		return c.JSON(svcs.Dashboard.Alerts(o))
	}))

	app.Get("/overview", withOverrides(func(c *fiber.Ctx, o service.Overrides) error {
		return c.JSON(svcs.Dashboard.Overview(o))
	}))
	app.Get("/pipeline", func(c *fiber.Ctx) error {
		return c.JSON(svcs.Dashboard.Pipeline())
	})

	contact := []fiber.Handler{}
	if contactLimiter != nil {
		contact = append(contact, contactLimiter.Handler())
	}
	contact = append(contact, func(c *fiber.Ctx) error {
		var e domain.Enquiry
		if err := c.BodyParser(&e); err != nil {
			return fail(c, fiber.StatusBadRequest, err)
		}
		r, err := svcs.Enquiries.Submit(c.UserContext(), e)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err)
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	})
	app.Post("/contact", contact...)
}

// withOverrides parses the workload and optimisation query parameters.
func withOverrides(h func(*fiber.Ctx, service.Overrides) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var o service.Overrides
		if raw := c.Query("workload"); raw != "" {
			w, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "workload must be a number"})
			}
			o.Workload = &w
		}
		if raw := c.Query("optimisation"); raw != "" {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "optimisation must be a boolean"})
			}
			o.Optimisation = &b
		}
		if err := o.Validate(); err != nil {
			return fail(c, fiber.StatusBadRequest, err)
		}
		return h(c, o)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, facility.ErrRackNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, store.ErrInvalidScenario):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, status int, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation failed", "fields": fields})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
