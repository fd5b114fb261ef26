package config

import (
	"DietApp/pkg/handlerUtil"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger) *fiber.App {
	errHandler := handlerUtil.New(logger)

	app := fiber.New(
		fiber.Config{
			AppName:           "Diet App Backend",
			BodyLimit:         12 * 1024 * 1024,
			DisableKeepalive:  false,
			StrictRouting:     true,
			CaseSensitive:     true,
			EnablePrintRoutes: false,
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				requestID, _ := c.Locals("X-Request-ID").(string)
				return errHandler.Handle(c, requestID, err, c.Path(), "fiber")
			},
		})

	return app
}
