/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ccsource downloads and extracts chaincode source archives into a
// temp directory so they can be scanned.
package ccsource

import (
	"archive/zip"
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/ibm-blockchain/ibc-go/pkg/common/logging"
	"github.com/pkg/errors"
	"golang.org/x/net/context/ctxhttp"
)

var logger = logging.NewLogger("ibc/fab")

const (
	zipFile        = "file.zip"
	unzipDir       = "unzip"
	defaultTimeout = time.Second * 60
	newDirMode     = 0755
)

// Fetcher retrieves chaincode archives into a temp directory
type Fetcher struct {
	tempDir    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures the fetcher
type Option func(f *Fetcher)

// WithHTTPClient replaces the client used for downloads
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = client
	}
}

// WithTimeout bounds downloads whose context has no deadline
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// New returns a fetcher working under tempDir
func New(tempDir string, opts ...Option) *Fetcher {
	f := &Fetcher{
		tempDir:    tempDir,
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// TempDir returns the directory the fetcher works in
func (f *Fetcher) TempDir() string {
	return f.tempDir
}

// Fetch downloads the zip at zipURL, extracts it and returns the path of
// subDir inside the extracted tree. Redirects are followed.
func (f *Fetcher) Fetch(ctx context.Context, zipURL, subDir string) (string, error) {
	if zipURL == "" {
		return "", status.Newf(status.InputValidation, status.BadRequest, "the option 'zip_url' is required")
	}
	if err := os.MkdirAll(f.tempDir, newDirMode); err != nil {
		return "", fsError(err, "creating temp directory failed")
	}

	zipPath := filepath.Join(f.tempDir, zipFile)
	if err := f.download(ctx, zipURL, zipPath); err != nil {
		os.Remove(zipPath)
		return "", err
	}
	defer os.Remove(zipPath)

	dest := filepath.Join(f.tempDir, unzipDir)
	logger.Info("Unzipping zip")
	if err := extract(zipPath, dest); err != nil {
		return "", err
	}

	ccDir := filepath.Join(dest, subDir)
	if info, err := os.Stat(ccDir); err != nil || !info.IsDir() {
		return "", status.Newf(status.FilesystemError, status.InternalError, "directory %s not found in archive", subDir)
	}
	return ccDir, nil
}

// Clear removes the temp directory. A missing directory is not an error.
func (f *Fetcher) Clear() error {
	logger.Debugf("removing temp dir %s", f.tempDir)
	if err := os.RemoveAll(f.tempDir); err != nil {
		return fsError(err, "removing temp directory failed")
	}
	return nil
}

func (f *Fetcher) download(ctx context.Context, url, dest string) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	logger.Infof("Downloading zip %s", url)
	resp, err := ctxhttp.Get(ctx, f.httpClient, url)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return status.Newf(status.TransportError, status.Timeout, "download of %s timed out", url)
		}
		return fsError(err, "download error")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 4096))
		return status.NewFromHTTPResponse(resp.StatusCode, body)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fsError(err, "creating %s failed", dest)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return fsError(err, "download error")
	}
	if err := out.Close(); err != nil {
		return fsError(err, "writing %s failed", dest)
	}
	return nil
}

// extract unpacks the archive into dest, overwriting existing files.
// Entries that would land outside dest are rejected.
func extract(archive, dest string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fsError(err, "opening archive failed")
	}
	defer r.Close()

	root := filepath.Clean(dest) + string(os.PathSeparator)
	for _, file := range r.File {
		target := filepath.Join(dest, file.Name)
		if !strings.HasPrefix(target, root) {
			return status.Newf(status.FilesystemError, status.InternalError, "archive entry %s escapes the destination", file.Name)
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, newDirMode); err != nil {
				return fsError(err, "creating %s failed", target)
			}
			continue
		}
		if err := extractFile(file, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(file *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), newDirMode); err != nil {
		return fsError(err, "creating directory for %s failed", target)
	}
	in, err := file.Open()
	if err != nil {
		return fsError(err, "reading archive entry %s failed", file.Name)
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, file.Mode().Perm()|0600)
	if err != nil {
		return fsError(err, "creating %s failed", target)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fsError(err, "extracting %s failed", file.Name)
	}
	if err := out.Close(); err != nil {
		return fsError(err, "writing %s failed", target)
	}
	return nil
}

func fsError(err error, format string, args ...interface{}) error {
	return status.New(status.FilesystemError, status.InternalError.ToInt32(), errors.Wrapf(err, format, args...).Error(), nil)
}
