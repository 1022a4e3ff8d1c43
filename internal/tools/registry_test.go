package tools_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/holidayagent/internal/tools"
)

func TestRegistryListsEveryTool(t *testing.T) {
	svc, _ := newService(t, christmas2025)
	reg := svc.Registry()

	assert.Equal(t, []string{
		"check-today-holidays",
		"get-holidays-by-country",
		"get-holidays-for-date",
		"get-supported-countries",
		"search-holidays-by-name",
		"validate-country-code",
	}, reg.List())

	for _, tool := range reg.All() {
		assert.NotEmpty(t, tool.Description(), tool.Name())
		assert.Equal(t, "object", tool.Schema()["type"], tool.Name())
	}
}

func TestRegistrySchema(t *testing.T) {
	svc, _ := newService(t, christmas2025)
	tool, ok := svc.Registry().Get(tools.ToolHolidaysByCountry)
	require.True(t, ok)

	schema := tool.Schema()
	assert.ElementsMatch(t, []any{"country", "year"}, schema["required"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	country := props["country"].(map[string]any)
	assert.EqualValues(t, 2, country["minLength"])
	assert.EqualValues(t, 2, country["maxLength"])
	year := props["year"].(map[string]any)
	assert.EqualValues(t, 2000, year["minimum"])
	typ := props["type"].(map[string]any)
	assert.ElementsMatch(t, []any{"national", "local", "religious", "observance"}, typ["enum"])
	assert.NotContains(t, schema, "$schema")
}

func TestRegistryCall(t *testing.T) {
	svc, srv := newService(t, christmas2025)
	reg := svc.Registry()
	ctx := context.Background()

	res, err := reg.Call(ctx, tools.ToolHolidaysByCountry, json.RawMessage(`{"country":"ng","year":2025}`))
	require.NoError(t, err)
	out, ok := res.(*tools.ByCountryOutput)
	require.True(t, ok)
	assert.Equal(t, 5, out.Count)

	res, err = reg.Call(ctx, tools.ToolSupportedCountries, nil)
	require.NoError(t, err)
	assert.Greater(t, res.(*tools.SupportedOutput).TotalCountries, 200)

	_, err = reg.Call(ctx, tools.ToolHolidaysByCountry, json.RawMessage(`{"country":`))
	var vErr *tools.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "arguments", vErr.Field)

	_, err = reg.Call(ctx, "no-such-tool", nil)
	assert.True(t, errors.Is(err, tools.ErrUnknownTool))
	assert.Equal(t, 1, srv.Requests())
}

func TestOperationErrorNotDoubleWrapped(t *testing.T) {
	inner := &tools.OperationError{Op: "fetch holidays", Err: errors.New("boom")}
	assert.Equal(t, "failed to fetch holidays: boom", inner.Error())
	assert.True(t, errors.Is(inner, inner.Err))
}
