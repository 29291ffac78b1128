package workflowtests

import (
	"time"

	"github.com/SW-CD/mediahub-workflow-tests/client"
	"github.com/SW-CD/mediahub-workflow-tests/servicedef"
)

// Well-known resource names. These are fixed across runs: teardown always
// targets all of them, whether or not the current run got far enough to
// create them, so state left by a previously aborted run is cleared too.
const (
	ImageDatabaseName = "test_image_db"
	AudioDatabaseName = "test_audio_db"
	FileDatabaseName  = "test_file_db"

	// The name used for the create attempt that must be rejected after the
	// user's create permission is revoked. It should never exist, but
	// teardown targets it anyway in case the server misbehaved.
	RecheckDatabaseName = "test_db_2"
)

// WellKnownDatabaseNames lists every database name the workflow may touch.
func WellKnownDatabaseNames() []string {
	return []string{ImageDatabaseName, AudioDatabaseName, FileDatabaseName, RecheckDatabaseName}
}

// DatabaseNameFor maps a content type to the well-known database of that
// type.
func DatabaseNameFor(ct servicedef.ContentType) string {
	switch ct {
	case servicedef.ContentTypeImage:
		return ImageDatabaseName
	case servicedef.ContentTypeAudio:
		return AudioDatabaseName
	default:
		return FileDatabaseName
	}
}

// Config carries everything the scenario needs to know about the target
// server and the actors it will play.
type Config struct {
	// BaseURL is the root of the MediaHub API, including the /api prefix.
	BaseURL string

	// Admin is the pre-existing administrator account. The harness never
	// creates or deletes it.
	Admin client.Credential

	// User is the identity of the regular account the workflow creates,
	// exercises, and deletes.
	User client.Credential

	// StartupTimeout bounds the readiness poll loop.
	StartupTimeout time.Duration

	// RequestTimeout applies to each individual API call. Uploads and
	// downloads share it, so it should be generous enough for the fixture
	// payloads.
	RequestTimeout time.Duration

	// FixtureDir is where the local fixture files are written. Empty means
	// the current directory.
	FixtureDir string
}
