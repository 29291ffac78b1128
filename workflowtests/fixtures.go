package workflowtests

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/SW-CD/mediahub-workflow-tests/framework"
	"github.com/SW-CD/mediahub-workflow-tests/servicedef"
)

// Fixture filenames are fixed, like the database names: teardown removes
// them whether or not the current run created them.
const (
	ImageFixtureName = "dummy.png"
	AudioFixtureName = "dummy.mp3"
	FileFixtureName  = "dummy.txt"
)

// Fixture is one locally generated upload payload.
type Fixture struct {
	// Name is the original filename; the download endpoint must echo it in
	// its Content-Disposition header.
	Name      string
	Path      string
	MediaType string
	Bytes     []byte
}

// Fixtures holds the three payloads the workflow uploads, one per content
// type.
type Fixtures struct {
	Image Fixture
	Audio Fixture
	File  Fixture
}

// CreateFixtures generates the payloads and writes them to dir: a 100x100
// red PNG, a stand-in MP3, and a plain text file.
func CreateFixtures(dir string) (*Fixtures, error) {
	imageBytes, err := redSquarePNG(100, 100)
	if err != nil {
		return nil, err
	}

	f := &Fixtures{
		Image: Fixture{Name: ImageFixtureName, MediaType: "image/png", Bytes: imageBytes},
		Audio: Fixture{Name: AudioFixtureName, MediaType: "audio/mpeg", Bytes: []byte("dummy mp3 data")},
		File:  Fixture{Name: FileFixtureName, MediaType: "text/plain", Bytes: []byte("dummy file data")},
	}
	for _, fx := range []*Fixture{&f.Image, &f.Audio, &f.File} {
		fx.Path = filepath.Join(dir, fx.Name)
		if err := os.WriteFile(fx.Path, fx.Bytes, 0o644); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ForContentType returns the fixture matching a database's content type.
func (f *Fixtures) ForContentType(ct servicedef.ContentType) Fixture {
	switch ct {
	case servicedef.ContentTypeImage:
		return f.Image
	case servicedef.ContentTypeAudio:
		return f.Audio
	default:
		return f.File
	}
}

// RemoveFixtureFiles deletes any fixture files present in dir. Absence is
// not an error; other removal failures are logged and skipped.
func RemoveFixtureFiles(dir string, logger framework.Logger) {
	for _, name := range []string{ImageFixtureName, AudioFixtureName, FileFixtureName} {
		path := filepath.Join(dir, name)
		err := os.Remove(path)
		switch {
		case err == nil:
			logger.Printf("removed fixture file %s", path)
		case os.IsNotExist(err):
		default:
			logger.Printf("could not remove fixture file %s: %s", path, err)
		}
	}
}

func redSquarePNG(width, height int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	red := color.RGBA{R: 0xff, A: 0xff}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: red}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
