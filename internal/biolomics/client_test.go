package biolomics

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirri-tools/strainsync/internal/errors"
	"github.com/mirri-tools/strainsync/internal/model"
)

const testServer = "https://catalog.example.org"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(Config{
		ServerURL: testServer,
		Username:  "user",
		Password:  "secret",
		ClientID:  "cid",
		WebsiteID: "42",
	})
	require.NoError(t, err)

	httpmock.ActivateNonDefault(client.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodPost, testServer+"/connect/token",
		httpmock.NewJsonResponderOrPanic(200, map[string]any{
			"access_token": "test-token",
			"token_type":   "bearer",
			"expires_in":   3600,
		}))
	return client
}

// registerSchemas serves a minimal catalog schema carrying the growth media
// view, which most client tests exercise.
func registerSchemas(fields []resultField) {
	httpmock.RegisterResponder(http.MethodGet, testServer+"/schemas",
		httpmock.NewJsonResponderOrPanic(200, []schemaTable{{
			TableViews: []tableView{{
				TableViewName: "Growth media",
				ResultFields:  fields,
			}},
		}}))
}

func mediumSchemaFields() []resultField {
	return []resultField{
		{Title: fieldMediumDescription, FieldType: TypeText},
		{Title: fieldMediumFullDescription, FieldType: TypeText},
		{Title: fieldMediumIngredients, FieldType: TypeText},
		{Title: fieldMediumOtherName, FieldType: TypeText},
		{Title: fieldMediumPH, FieldType: TypeNumber},
		{Title: fieldMediumSterilization, FieldType: TypeText},
	}
}

func TestNewClient_ConfigValidation(t *testing.T) {
	_, err := NewClient(Config{Username: "u", Password: "p"})
	assert.Error(t, err, "server URL is required")

	_, err = NewClient(Config{ServerURL: testServer})
	assert.Error(t, err, "credentials are required")
}

func TestRetrieveByID(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, testServer+"/v2/data/growth_medium/11",
		httpmock.NewJsonResponderOrPanic(200, Record{
			RecordID:   11,
			RecordName: "AAA",
			RecordDetails: map[string]Field{
				fieldMediumDescription: TextField("Nutrient agar"),
			},
		}))

	entity, err := client.RetrieveByID(context.Background(), EndpointGrowthMedium, 11)
	require.NoError(t, err)
	medium, ok := entity.(*model.GrowthMedium)
	require.True(t, ok)
	assert.Equal(t, 11, medium.RecordID)
	assert.Equal(t, "AAA", medium.Acronym)
	assert.Equal(t, "Nutrient agar", medium.Description)
}

func TestRetrieveByID_AbsentIsNil(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, testServer+"/v2/data/growth_medium/404",
		httpmock.NewStringResponder(404, `{"error":"not found"}`))

	entity, err := client.RetrieveByID(context.Background(), EndpointGrowthMedium, 404)
	require.NoError(t, err)
	assert.Nil(t, entity)
}

func TestResolveName_CachesHits(t *testing.T) {
	client := newTestClient(t)
	url := testServer + "/v2/search/growth_medium/findByName"
	httpmock.RegisterResponder(http.MethodGet, url,
		httpmock.NewJsonResponderOrPanic(200, Record{RecordID: 11, RecordName: "AAA"}))

	rec, err := client.ResolveName(context.Background(), EndpointGrowthMedium, "AAA")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 11, rec.RecordID)

	_, err = client.ResolveName(context.Background(), EndpointGrowthMedium, "AAA")
	require.NoError(t, err)

	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["GET "+url], "second resolution must come from the cache")
}

func TestSearch(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodPost, testServer+"/v2/search/strain",
		func(req *http.Request) (*http.Response, error) {
			var q SearchQuery
			if err := json.NewDecoder(req.Body).Decode(&q); err != nil {
				return httpmock.NewStringResponse(400, err.Error()), nil
			}
			if len(q.Query) != 1 || q.Query[0].Value != "CECT 1" || q.Expression != "Q0" {
				return httpmock.NewStringResponse(400, "unexpected query"), nil
			}
			return httpmock.NewJsonResponse(200, searchResponse{
				Total: 1,
				Records: []Record{{
					RecordID:   7,
					RecordName: "MIRRI CECT 1",
					RecordDetails: map[string]Field{
						"Accession number": TextField("CECT 1"),
					},
				}},
			})
		})

	result, err := client.Search(context.Background(), EndpointStrain,
		ExactMatchQuery("Accession number", "CECT 1"))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Records, 1)
	strain, ok := result.Records[0].(*model.Strain)
	require.True(t, ok)
	assert.Equal(t, model.StrainID{Collection: "CECT", Number: "1"}, strain.ID)
	assert.Equal(t, 7, strain.RecordID)
}

func TestCreate_AssignsRecordID(t *testing.T) {
	client := newTestClient(t)
	registerSchemas(mediumSchemaFields())
	httpmock.RegisterResponder(http.MethodPost, testServer+"/data/growth_medium",
		func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
			require.Equal(t, "42", req.Header.Get("websiteId"))
			var rec Record
			if err := json.NewDecoder(req.Body).Decode(&rec); err != nil {
				return httpmock.NewStringResponse(400, err.Error()), nil
			}
			require.Equal(t, "MIRRI", rec.Acronym)
			require.Zero(t, rec.RecordID)
			rec.RecordID = 7
			return httpmock.NewJsonResponse(200, rec)
		})

	medium := &model.GrowthMedium{Acronym: "AAA", Description: "Nutrient agar"}
	entity, err := client.Create(context.Background(), EndpointGrowthMedium, medium)
	require.NoError(t, err)
	created, ok := entity.(*model.GrowthMedium)
	require.True(t, ok)
	assert.Equal(t, 7, created.RecordID)
	assert.Equal(t, "AAA", created.RecordName)
}

func TestCreate_FieldNotAllowed(t *testing.T) {
	client := newTestClient(t)
	// schema without the pH field
	registerSchemas([]resultField{
		{Title: fieldMediumDescription, FieldType: TypeText},
	})

	ph := 7.2
	medium := &model.GrowthMedium{Acronym: "AAA", Description: "Nutrient agar", PH: &ph}
	_, err := client.Create(context.Background(), EndpointGrowthMedium, medium)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFieldNotAllowed))
}

func TestCreate_BadFieldType(t *testing.T) {
	client := newTestClient(t)
	registerSchemas([]resultField{
		{Title: fieldMediumDescription, FieldType: TypeNumber},
	})

	medium := &model.GrowthMedium{Acronym: "AAA", Description: "Nutrient agar"}
	_, err := client.Create(context.Background(), EndpointGrowthMedium, medium)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBadFieldType))
}

func TestCreate_ValueNotInStates(t *testing.T) {
	client := newTestClient(t)
	registerSchemas([]resultField{
		{Title: fieldMediumDescription, FieldType: TypeText,
			States: []string{"Solid (agar)", "Liquid (broth)"}},
	})

	medium := &model.GrowthMedium{Acronym: "AAA", Description: "Nutrient agar"}
	_, err := client.Create(context.Background(), EndpointGrowthMedium, medium)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValueNotInStates))

	// stripped state labels match
	medium.Description = "Solid"
	httpmock.RegisterResponder(http.MethodPost, testServer+"/data/growth_medium",
		httpmock.NewJsonResponderOrPanic(200, Record{RecordID: 1, RecordName: "AAA"}))
	_, err = client.Create(context.Background(), EndpointGrowthMedium, medium)
	require.NoError(t, err)
}

func TestUpdate_RequiresRecordID(t *testing.T) {
	client := newTestClient(t)
	registerSchemas(mediumSchemaFields())

	medium := &model.GrowthMedium{Acronym: "AAA", Description: "Nutrient agar"}
	_, err := client.Update(context.Background(), EndpointGrowthMedium, medium)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRecordIDRequired))
}

func TestUpdate(t *testing.T) {
	client := newTestClient(t)
	registerSchemas(mediumSchemaFields())
	httpmock.RegisterResponder(http.MethodPut, testServer+"/data/growth_medium",
		func(req *http.Request) (*http.Response, error) {
			var rec Record
			if err := json.NewDecoder(req.Body).Decode(&rec); err != nil {
				return httpmock.NewStringResponse(400, err.Error()), nil
			}
			require.Equal(t, 7, rec.RecordID)
			require.Empty(t, rec.Acronym)
			return httpmock.NewJsonResponse(200, rec)
		})

	medium := &model.GrowthMedium{Acronym: "AAA", Description: "changed", RecordID: 7, RecordName: "AAA"}
	entity, err := client.Update(context.Background(), EndpointGrowthMedium, medium)
	require.NoError(t, err)
	updated := entity.(*model.GrowthMedium)
	assert.Equal(t, 7, updated.RecordID)
	assert.Equal(t, "changed", updated.Description)
}

func TestDeleteByName(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(http.MethodGet, testServer+"/v2/search/growth_medium/findByName",
		httpmock.NewJsonResponderOrPanic(200, Record{RecordID: 11, RecordName: "AAA"}))
	httpmock.RegisterResponder(http.MethodDelete, testServer+"/v2/data/growth_medium/11",
		httpmock.NewStringResponder(200, ""))

	require.NoError(t, client.DeleteByName(context.Background(), EndpointGrowthMedium, "AAA"))
	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["DELETE "+testServer+"/v2/data/growth_medium/11"])
}

func TestTransaction_NestedFails(t *testing.T) {
	client := newTestClient(t)
	require.NoError(t, client.StartTransaction())
	err := client.StartTransaction()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTransactionNested))

	client.FinishTransaction()
	require.NoError(t, client.StartTransaction())
	client.FinishTransaction()
}

func TestRollback_DeletesLIFO(t *testing.T) {
	client := newTestClient(t)
	registerSchemas(mediumSchemaFields())

	nextID := 0
	httpmock.RegisterResponder(http.MethodPost, testServer+"/data/growth_medium",
		func(req *http.Request) (*http.Response, error) {
			var rec Record
			if err := json.NewDecoder(req.Body).Decode(&rec); err != nil {
				return httpmock.NewStringResponse(400, err.Error()), nil
			}
			nextID++
			rec.RecordID = nextID
			return httpmock.NewJsonResponse(200, rec)
		})

	var deleted []string
	for _, id := range []string{"1", "2", "3"} {
		url := testServer + "/v2/data/growth_medium/" + id
		id := id
		httpmock.RegisterResponder(http.MethodDelete, url,
			func(*http.Request) (*http.Response, error) {
				deleted = append(deleted, id)
				return httpmock.NewStringResponse(200, ""), nil
			})
	}

	require.NoError(t, client.StartTransaction())
	for _, acronym := range []string{"AAA", "BBB", "CCC"} {
		_, err := client.Create(context.Background(), EndpointGrowthMedium,
			&model.GrowthMedium{Acronym: acronym, Description: "medium " + acronym})
		require.NoError(t, err)
	}

	client.Rollback(context.Background())
	assert.Equal(t, []string{"3", "2", "1"}, deleted)
	assert.False(t, client.InTransaction())
}

func TestRollback_SwallowsDeleteFailures(t *testing.T) {
	client := newTestClient(t)
	registerSchemas(mediumSchemaFields())
	httpmock.RegisterResponder(http.MethodPost, testServer+"/data/growth_medium",
		httpmock.NewJsonResponderOrPanic(200, Record{RecordID: 1, RecordName: "AAA"}))
	httpmock.RegisterResponder(http.MethodDelete, testServer+"/v2/data/growth_medium/1",
		httpmock.NewStringResponder(404, "gone already"))

	require.NoError(t, client.StartTransaction())
	_, err := client.Create(context.Background(), EndpointGrowthMedium,
		&model.GrowthMedium{Acronym: "AAA", Description: "medium"})
	require.NoError(t, err)

	client.Rollback(context.Background())
	assert.False(t, client.InTransaction())
}

func TestFinishTransaction_KeepsCreations(t *testing.T) {
	client := newTestClient(t)
	registerSchemas(mediumSchemaFields())
	httpmock.RegisterResponder(http.MethodPost, testServer+"/data/growth_medium",
		httpmock.NewJsonResponderOrPanic(200, Record{RecordID: 1, RecordName: "AAA"}))

	require.NoError(t, client.StartTransaction())
	_, err := client.Create(context.Background(), EndpointGrowthMedium,
		&model.GrowthMedium{Acronym: "AAA", Description: "medium"})
	require.NoError(t, err)
	client.FinishTransaction()

	info := httpmock.GetCallCountInfo()
	for key := range info {
		assert.NotContains(t, key, "DELETE", "commit must not delete anything")
	}
}

func TestUnknownEndpoint(t *testing.T) {
	client := newTestClient(t)
	_, err := client.RetrieveByID(context.Background(), Endpoint(99), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownEndpoint))
}

func TestRetryOn5xx(t *testing.T) {
	client := newTestClient(t)
	responder := httpmock.NewJsonResponderOrPanic(200, Record{RecordID: 11, RecordName: "AAA"})
	httpmock.RegisterResponder(http.MethodGet, testServer+"/v2/data/growth_medium/11",
		httpmock.NewStringResponder(500, "boom").Then(responder))

	entity, err := client.RetrieveByID(context.Background(), EndpointGrowthMedium, 11)
	require.NoError(t, err)
	require.NotNil(t, entity)
}

func TestNoRetryOn4xx(t *testing.T) {
	client := newTestClient(t)
	url := testServer + "/v2/data/growth_medium/11"
	httpmock.RegisterResponder(http.MethodGet, url,
		httpmock.NewStringResponder(400, "bad request"))

	_, err := client.RetrieveByID(context.Background(), EndpointGrowthMedium, 11)
	require.Error(t, err)
	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["GET "+url])
}
