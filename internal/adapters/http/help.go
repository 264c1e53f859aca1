package http

import "github.com/gofiber/fiber/v2"

const helpText = `Requesting data:
  /                        Return entire data set
  /epochs                  Return list of all Epochs in the data set
  /epochs?                 Return modified list of Epochs given query parameters
     limit=int&               Limits number of epochs in the list
     offset=int               Offsets the start of the list
  /epochs/<epoch>          Return state vectors for a specific Epoch from the data set
  /epochs/<epoch>/speed    Return instantaneous speed for a specific Epoch in the data set
  /epochs/<epoch>/location Return location info for a specific Epoch in the data set
  /now                     Return location info for the most recent Epoch in the data set
  /comment                 Return comments from the data set
  /header                  Return header from the data set
  /metadata                Return metadata from the data set
  /help                    Return help text that briefly describes each route
Modifying data:
  /delete-data             Delete all data from the dictionary object (DELETE)
  /post-data               Reload the dictionary object with data from the web (POST)
Service:
  /graphql                 GraphQL queries over the data set (POST)
  /ws                      WebSocket stream of data set load/delete events
  /health, /ready          Liveness and readiness checks
  /metrics                 Prometheus metrics
  /docs                    OpenAPI documentation
`

// HelpHandler describes every route in plain text.
func HelpHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(helpText)
	}
}
