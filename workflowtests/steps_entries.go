package workflowtests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/SW-CD/mediahub-workflow-tests/client"
	"github.com/SW-CD/mediahub-workflow-tests/servicedef"
)

var workflowContentTypes = []servicedef.ContentType{
	servicedef.ContentTypeImage,
	servicedef.ContentTypeAudio,
	servicedef.ContentTypeFile,
}

// entryMetadata is the custom-field metadata uploaded with each entry. The
// keys must match the owning database's custom fields.
func entryMetadata(ct servicedef.ContentType) ldvalue.Value {
	switch ct {
	case servicedef.ContentTypeImage:
		return ldvalue.ObjectBuild().Set("description", ldvalue.String("This is a test image")).Build()
	case servicedef.ContentTypeAudio:
		return ldvalue.ObjectBuild().Set("artist", ldvalue.String("Test Artist")).Build()
	default:
		return ldvalue.ObjectBuild().Set("description", ldvalue.String("This is a test file")).Build()
	}
}

// DoEntryUploadSteps submits one multipart entry per database as the
// regular user.
func DoEntryUploadSteps(t *T) {
	for _, ct := range workflowContentTypes {
		ct := ct
		t.Run(string(ct), func(t *T) {
			dbName := DatabaseNameFor(ct)
			fx := t.env.fixtures.ForContentType(ct)

			contentType, form, err := client.BuildEntryForm(entryMetadata(ct), fx.Name, fx.MediaType, fx.Bytes)
			require.NoError(t, err, "building multipart form")

			path := "/entry?" + url.Values{"database_name": {dbName}}.Encode()
			resp, err := t.UserSession().Post(path, contentType, form, t.DebugLogger())
			require.NoError(t, err, "uploading %s entry", ct)
			t.RequireStatus(resp, http.StatusCreated, fmt.Sprintf("uploading %s entry to %q", ct, dbName))

			var created servicedef.CreateEntryResponse
			require.NoError(t, json.Unmarshal(resp.Body, &created),
				"parsing create-entry response: %s", resp.BodyExcerpt())

			t.env.ledger.Record(Resource{
				Kind:     ResourceEntry,
				Key:      strconv.FormatInt(created.ID, 10),
				Database: dbName,
			})
			t.env.entryIDs[ct] = created.ID

			require.NotZero(t, created.ID, "server did not assign an entry id")
			t.Debug("uploaded %s (%d bytes) as entry %d in %q", fx.Name, len(fx.Bytes), created.ID, dbName)
		})
	}
}

// DoEntryVerifySteps downloads each uploaded entry and checks round-trip
// fidelity: the exact bytes come back, carrying the declared media type and
// the original filename in the attachment header.
func DoEntryVerifySteps(t *T) {
	for _, ct := range workflowContentTypes {
		ct := ct
		t.Run(string(ct), func(t *T) {
			dbName := DatabaseNameFor(ct)
			fx := t.env.fixtures.ForContentType(ct)
			id := t.env.entryIDs[ct]

			q := url.Values{"database_name": {dbName}, "id": {strconv.FormatInt(id, 10)}}
			resp, err := t.UserSession().Get("/entry/file?"+q.Encode(), t.DebugLogger())
			require.NoError(t, err, "downloading %s entry", ct)
			t.RequireStatus(resp, http.StatusOK, fmt.Sprintf("downloading entry %d from %q", id, dbName))

			assert.Equal(t, fx.MediaType, resp.Header.Get("Content-Type"),
				"declared media type was not echoed back")
			assert.Equal(t, fmt.Sprintf("attachment; filename=%q", fx.Name),
				resp.Header.Get("Content-Disposition"),
				"original filename was not echoed back")
			if !bytes.Equal(fx.Bytes, resp.Body) {
				t.Errorf("downloaded %s entry differs from the uploaded fixture (%d bytes uploaded, %d returned)",
					ct, len(fx.Bytes), len(resp.Body))
			}
		})
	}
}
