package client

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestBuildEntryFormProducesMetadataAndFileParts(t *testing.T) {
	metadata := ldvalue.ObjectBuild().
		Set("description", ldvalue.String("This is a test image")).
		Build()
	payload := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}

	contentType, body, err := BuildEntryForm(metadata, "dummy.png", "image/png", payload)
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])

	metaPart, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "metadata", metaPart.FormName())
	assert.Equal(t, "", metaPart.FileName())
	assert.Equal(t, "application/json", metaPart.Header.Get("Content-Type"))
	metaBody, err := io.ReadAll(metaPart)
	require.NoError(t, err)
	assert.JSONEq(t, `{"description": "This is a test image"}`, string(metaBody))

	filePart, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", filePart.FormName())
	assert.Equal(t, "dummy.png", filePart.FileName())
	assert.Equal(t, "image/png", filePart.Header.Get("Content-Type"))
	fileBody, err := io.ReadAll(filePart)
	require.NoError(t, err)
	assert.Equal(t, payload, fileBody)

	_, err = reader.NextPart()
	assert.Equal(t, io.EOF, err)
}
