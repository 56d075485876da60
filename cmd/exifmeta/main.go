// Command exifmeta prints the dimensions and EXIF metadata of image files.
//
//	exifmeta [-format table|text|json] [-subifd] [-mime type] file...
package main

import (
	"flag"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	log "github.com/dsoprea/go-logging"

	"github.com/soypat/exifmeta/export"
	"github.com/soypat/exifmeta/meta"
	"github.com/soypat/exifmeta/tiff"
)

var mainLogger = log.NewLogger("exifmeta.main")

type options struct {
	format   string
	mimeType string
	decode   []tiff.Option
}

func main() {
	defer func() {
		if errRaw := recover(); errRaw != nil {
			err := errRaw.(error)
			log.PrintError(err)
			os.Exit(2)
		}
	}()

	var opts options
	var subIFD bool
	flag.StringVar(&opts.format, "format", "table", "output format: table, text or json")
	flag.BoolVar(&subIFD, "subifd", false, "also decode the Exif sub-IFD")
	flag.StringVar(&opts.mimeType, "mime", "", "MIME type to report instead of detecting it")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: exifmeta [flags] file...")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if subIFD {
		opts.decode = append(opts.decode, tiff.WithSubIFDs())
	}

	failed, err := run(os.Stdout, flag.Args(), opts)
	log.PanicIf(err)
	if failed > 0 {
		os.Exit(1)
	}
}

type result struct {
	m   meta.Metadata
	err error
}

// run extracts the metadata of every path and writes it to w in argument
// order. It returns the number of files that could not be read. The error is
// only set for an unknown format or a failed write.
func run(w io.Writer, paths []string, opts options) (failed int, err error) {
	write, err := writerFor(opts.format)
	if err != nil {
		return 0, err
	}

	// Files are independent so each one is parsed on its own goroutine.
	results := make([]result, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			results[i].m, results[i].err = extractFile(path, opts.mimeType, opts.decode)
		}(i, path)
	}
	wg.Wait()

	written := 0
	for i, res := range results {
		if res.err != nil && res.m.File.Name == "" {
			mainLogger.Errorf(nil, res.err, "%s", paths[i])
			failed++
			continue
		}
		if res.err != nil {
			mainLogger.Warningf(nil, "%s: %v", paths[i], res.err)
		}
		if written > 0 && opts.format != "json" {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return failed, err
			}
		}
		if err := write(w, res.m); err != nil {
			return failed, err
		}
		written++
	}
	return failed, nil
}

func writerFor(format string) (func(io.Writer, meta.Metadata) error, error) {
	switch format {
	case "table":
		return export.WriteTable, nil
	case "text":
		return export.WriteText, nil
	case "json":
		return export.WriteJSON, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// extractFile reads path and extracts its metadata. An error with a zero
// Metadata means the file could not be read at all.
func extractFile(path, mimeType string, opts []tiff.Option) (meta.Metadata, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return meta.Metadata{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return meta.Metadata{}, err
	}
	if mimeType == "" {
		mimeType = detectMIME(path, b)
	}
	info := meta.FileInfo{
		Name:     filepath.Base(path),
		Size:     fi.Size(),
		MIMEType: mimeType,
		ModTime:  fi.ModTime(),
	}
	return meta.Extract(b, info, nil, opts...)
}

// detectMIME prefers the extension and falls back to content sniffing.
func detectMIME(path string, b []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return http.DetectContentType(b[:min(len(b), 512)])
}
