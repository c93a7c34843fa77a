// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/basiclog/logger"
)

const (
	forwardedHostHeaderKey = "x-forwarded-host"
	forwardedForHeaderKey  = "x-forwarded-for"
	requestIDHeaderName    = "x-request-id"
	userAgentHeaderName    = "user-agent"

	IncomingRequestMessage  = "incoming request"
	RequestCompletedMessage = "request completed"
)

// RequestID returns the x-request-id header of the request, empty when missing.
func RequestID(c *fiber.Ctx) string {
	return c.Get(requestIDHeaderName)
}

// RequestLogger is a fiber middleware logging every request not matching one of excludedPrefix.
// Each request is logged by a Logger tagged with the request id, or a new random
// uuid when the request has none. The Logger is also made
// available to the handlers through logger.FromContext(c.UserContext()).
func RequestLogger(log *logger.Logger, excludedPrefix []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := string(c.Request().URI().Path())
		for _, prefix := range excludedPrefix {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		start := time.Now()
		identityLog, err := log.WithIdentity(RequestID(c))
		if err != nil {
			return err
		}
		requestLog := identityLog.Bind("method", c.Method(), "path", path)

		c.SetUserContext(logger.WithContext(c.UserContext(), requestLog))

		requestLog.Debug(IncomingRequestMessage,
			"userAgent", c.Get(userAgentHeaderName),
			"hostname", removePort(string(c.Request().Host())),
			"forwardedHost", c.Get(forwardedHostHeaderKey),
			"ip", c.Get(forwardedForHeaderKey),
		)

		err = c.Next()
		requestLog.Info(RequestCompletedMessage,
			"statusCode", statusCode(c, err),
			"responseTime", float64(time.Since(start).Milliseconds()),
		)

		return err
	}
}

func statusCode(c *fiber.Ctx, err error) int {
	if fiberErr, ok := err.(*fiber.Error); ok {
		return fiberErr.Code
	}
	return c.Response().StatusCode()
}

func removePort(host string) string {
	return strings.Split(host, ":")[0]
}
