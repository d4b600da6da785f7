package utils

import (
	"context"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// IsURL reports whether the source looks like an http(s) address.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// DownloadImage retrieves the url into a temporary file and returns its path.
// The caller is responsible for removing the file.
func DownloadImage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrapf(err, "invalid URI %s", url)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "unable to download image file from URI %s", url)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("unable to download image file from URI %s, status %v", url, res.Status)
	}

	tmpfile, err := os.CreateTemp("", "image-*"+path.Ext(req.URL.Path))
	if err != nil {
		return "", errors.Wrap(err, "unable to create temporary file")
	}
	defer tmpfile.Close()

	// Copy the image binary data into the temporary file.
	if _, err = io.Copy(tmpfile, res.Body); err != nil {
		os.Remove(tmpfile.Name())
		return "", errors.Wrap(err, "unable to copy the source URI into the destination file")
	}
	return tmpfile.Name(), nil
}
