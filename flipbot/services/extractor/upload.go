package extractor

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"flipbot/flipbot/utils/logging"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Upload is a file handed to the normalizer. Temporary uploads are removed by
// Release; files the caller owns are left alone.
type Upload struct {
	Filename string
	Path     string
	temp     bool
}

// LocalFile wraps a file the caller owns, e.g. a CLI argument.
func LocalFile(path string) *Upload {
	return &Upload{Filename: filepath.Base(path), Path: path}
}

// SaveMultipart copies an uploaded part into dir (os.TempDir when empty) under
// a random name that keeps the original extension.
func SaveMultipart(fh *multipart.FileHeader, dir string) (*Upload, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, eris.Wrap(err, "upload: open part")
	}
	defer src.Close()
	return SaveReader(fh.Filename, src, dir)
}

// SaveReader copies r into a temporary file. The file is removed if the copy
// fails.
func SaveReader(filename string, r io.Reader, dir string) (*Upload, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	ext := strings.ToLower(filepath.Ext(filename))
	dst, err := os.CreateTemp(dir, "flipbot-*"+ext)
	if err != nil {
		return nil, eris.Wrap(err, "upload: create temp file")
	}
	u := &Upload{Filename: filepath.Base(filename), Path: dst.Name(), temp: true}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		u.Release()
		return nil, eris.Wrap(err, "upload: write temp file")
	}
	if err := dst.Close(); err != nil {
		u.Release()
		return nil, eris.Wrap(err, "upload: close temp file")
	}
	return u, nil
}

// Ext is the lowercase extension of the original file name, with the dot.
func (u *Upload) Ext() string {
	return strings.ToLower(filepath.Ext(u.Filename))
}

// Release removes a temporary upload. It is safe to call more than once and
// on a nil Upload.
func (u *Upload) Release() {
	if u == nil || !u.temp {
		return
	}
	if err := os.Remove(u.Path); err != nil && !os.IsNotExist(err) {
		logging.ErrorLogger.Error("temp upload cleanup failed", zap.String("path", u.Path), zap.Error(err))
	}
	u.temp = false
}
