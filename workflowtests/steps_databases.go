package workflowtests

import (
	"fmt"
	"net/http"

	"github.com/stretchr/testify/require"

	"github.com/SW-CD/mediahub-workflow-tests/servicedef"
)

// databaseDefinitions returns the three databases the workflow creates, one
// per content type, each with one custom text field.
func databaseDefinitions() []servicedef.CreateDatabaseParams {
	return []servicedef.CreateDatabaseParams{
		{
			Name:         ImageDatabaseName,
			ContentType:  servicedef.ContentTypeImage,
			CustomFields: []servicedef.CustomField{{Name: "description", Type: "TEXT"}},
		},
		{
			Name:         AudioDatabaseName,
			ContentType:  servicedef.ContentTypeAudio,
			CustomFields: []servicedef.CustomField{{Name: "artist", Type: "TEXT"}},
		},
		{
			Name:         FileDatabaseName,
			ContentType:  servicedef.ContentTypeFile,
			CustomFields: []servicedef.CustomField{{Name: "description", Type: "TEXT"}},
		},
	}
}

// DoDatabaseCreateSteps creates the content databases as the regular user.
// A name conflict is a hard failure, not something to skip past: it means
// pre-cleanup did not leave the server in a known state.
func DoDatabaseCreateSteps(t *T) {
	for _, def := range databaseDefinitions() {
		def := def
		t.Run(string(def.ContentType), func(t *T) {
			resp, err := t.UserSession().PostJSON("/database", def, t.DebugLogger())
			require.NoError(t, err, "creating database %q", def.Name)
			t.RequireStatus(resp, http.StatusCreated, fmt.Sprintf("creating database %q", def.Name))

			t.env.ledger.Record(Resource{Kind: ResourceDatabase, Key: def.Name})
			t.Debug("created database %q", def.Name)
		})
	}
}
