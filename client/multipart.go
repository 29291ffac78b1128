package client

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// BuildEntryForm assembles the multipart body for POST /entry: a "metadata"
// part holding a JSON object, and a "file" part carrying the binary payload
// with its original filename and declared media type. The server extracts
// the filename from the part's Content-Disposition and echoes it back on
// download.
func BuildEntryForm(
	metadata ldvalue.Value,
	filename, mediaType string,
	payload []byte,
) (contentType string, body []byte, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	metaHeader := make(textproto.MIMEHeader)
	metaHeader.Set("Content-Disposition", `form-data; name="metadata"`)
	metaHeader.Set("Content-Type", jsonContentType)
	part, err := w.CreatePart(metaHeader)
	if err != nil {
		return "", nil, err
	}
	if _, err := part.Write([]byte(metadata.JSONString())); err != nil {
		return "", nil, err
	}

	fileHeader := make(textproto.MIMEHeader)
	fileHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	fileHeader.Set("Content-Type", mediaType)
	part, err = w.CreatePart(fileHeader)
	if err != nil {
		return "", nil, err
	}
	if _, err := part.Write(payload); err != nil {
		return "", nil, err
	}

	if err := w.Close(); err != nil {
		return "", nil, err
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}
