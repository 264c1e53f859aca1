package http

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/isstracker/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to the dataset services.
// Object fields resolve through the json tags on the domain types.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	quantityType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Quantity",
		Fields: graphql.Fields{
			"value": &graphql.Field{Type: graphql.Float},
			"units": &graphql.Field{Type: graphql.String},
		},
	})

	stateVectorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "StateVector",
		Fields: graphql.Fields{
			"epoch": &graphql.Field{Type: graphql.String},
			"x":     &graphql.Field{Type: quantityType},
			"y":     &graphql.Field{Type: quantityType},
			"z":     &graphql.Field{Type: quantityType},
			"x_dot": &graphql.Field{Type: quantityType},
			"y_dot": &graphql.Field{Type: quantityType},
			"z_dot": &graphql.Field{Type: quantityType},
		},
	})

	speedType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Speed",
		Fields: graphql.Fields{
			"speed": &graphql.Field{Type: graphql.Float},
			"units": &graphql.Field{Type: graphql.String},
		},
	})

	addressLineType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AddressLine",
		Fields: graphql.Fields{
			"key":   &graphql.Field{Type: graphql.String},
			"value": &graphql.Field{Type: graphql.String},
		},
	})

	geopositionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Geoposition",
		Fields: graphql.Fields{
			"found": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Geoposition).Found, nil
				},
			},
			"zoom": &graphql.Field{
				Type:        graphql.Int,
				Description: "Nominatim zoom level that produced the address",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					g := p.Source.(domain.Geoposition)
					if !g.Found {
						return nil, nil
					}
					return g.Zoom, nil
				},
			},
			"label": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Geoposition).Label(), nil
				},
			},
			"address": &graphql.Field{
				Type: graphql.NewList(addressLineType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return addressLines(p.Source.(domain.Geoposition).Address), nil
				},
			},
		},
	})

	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Location",
		Fields: graphql.Fields{
			"latitude":    &graphql.Field{Type: graphql.Float},
			"longitude":   &graphql.Field{Type: graphql.Float},
			"altitude":    &graphql.Field{Type: graphql.Float},
			"geoposition": &graphql.Field{Type: geopositionType},
		},
	})

	locationReportType := graphql.NewObject(graphql.ObjectConfig{
		Name: "LocationReport",
		Fields: graphql.Fields{
			"epoch":    &graphql.Field{Type: graphql.String},
			"location": &graphql.Field{Type: locationType},
			"speed":    &graphql.Field{Type: speedType},
		},
	})

	headerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Header",
		Fields: graphql.Fields{
			"creation_date": &graphql.Field{Type: graphql.String},
			"originator":    &graphql.Field{Type: graphql.String},
		},
	})

	metadataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Metadata",
		Fields: graphql.Fields{
			"object_name":        &graphql.Field{Type: graphql.String},
			"object_id":          &graphql.Field{Type: graphql.String},
			"center_name":        &graphql.Field{Type: graphql.String},
			"ref_frame":          &graphql.Field{Type: graphql.String},
			"time_system":        &graphql.Field{Type: graphql.String},
			"start_time":         &graphql.Field{Type: graphql.String},
			"useable_start_time": &graphql.Field{Type: graphql.String},
			"useable_stop_time":  &graphql.Field{Type: graphql.String},
			"stop_time":          &graphql.Field{Type: graphql.String},
		},
	})

	epochArg := graphql.FieldConfigArgument{
		"epoch": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"epochs": &graphql.Field{
				Type:        graphql.NewList(graphql.String),
				Description: "Epochs in the data set, sliced by offset and limit",
				Args: graphql.FieldConfigArgument{
					"offset": &graphql.ArgumentConfig{Type: graphql.Int},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Epochs.Epochs(p.Context, intArg(p, "offset"), intArg(p, "limit"))
				},
			},
			"stateVector": &graphql.Field{
				Type:        stateVectorType,
				Description: "State vector at one epoch",
				Args:        epochArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Epochs.StateVector(p.Context, p.Args["epoch"].(string))
				},
			},
			"speed": &graphql.Field{
				Type:        speedType,
				Description: "Instantaneous speed at one epoch",
				Args:        epochArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Epochs.Speed(p.Context, p.Args["epoch"].(string))
				},
			},
			"location": &graphql.Field{
				Type:        locationReportType,
				Description: "Sub-satellite point, altitude and place at one epoch",
				Args:        epochArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Locations.Locate(p.Context, p.Args["epoch"].(string))
				},
			},
			"now": &graphql.Field{
				Type:        locationReportType,
				Description: "Location at the most recent epoch",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Locations.Now(p.Context)
				},
			},
			"header": &graphql.Field{
				Type: headerType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Data.Header(p.Context)
				},
			},
			"metadata": &graphql.Field{
				Type: metadataType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Data.Metadata(p.Context)
				},
			},
			"comments": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Data.Comments(p.Context)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil || req.Query == "" {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})
		if result.HasErrors() {
			LoggerFromCtx(c.UserContext()).Debug("graphql errors", "errors", result.Errors)
		}

		c.Set(fiber.HeaderCacheControl, "private, max-age=0")
		return c.JSON(result)
	}
}

func intArg(p graphql.ResolveParams, name string) *int {
	v, ok := p.Args[name].(int)
	if !ok {
		return nil
	}
	return &v
}

type addressLine struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// addressLines flattens an address map into key-sorted pairs.
func addressLines(address map[string]string) []addressLine {
	keys := make([]string, 0, len(address))
	for k := range address {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]addressLine, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, addressLine{Key: k, Value: address[k]})
	}
	return lines
}
