// Command codegen writes the exifid package: one exifmeta.ID constant per
// registry entry. Run through go generate from the module root.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/soypat/exifmeta"
)

func main() {
	output := flag.String("o", "exifid/exifid.go", "output file")
	flag.Parse()
	fp, err := os.Create(*output)
	if err != nil {
		panic(err)
	}
	defer fp.Close()
	err = genExifid(fp, exifmeta.Registered())
	if err != nil {
		panic(err)
	}
}

func genExifid(w io.Writer, defs []exifmeta.TagDef) error {
	var buf strings.Builder
	buf.WriteString(`// Code generated by codegen. DO NOT EDIT.

package exifid

import "github.com/soypat/exifmeta"

// All registered EXIF field/tag IDs.
const (
`)
	maxLen := 0
	written := make(map[string]struct{})
	for _, def := range defs {
		if _, ok := written[def.Name]; ok {
			return fmt.Errorf("duplicate tag name %q (%#04x)", def.Name, uint16(def.ID))
		}
		written[def.Name] = struct{}{}
		if len(def.Name) > maxLen {
			maxLen = len(def.Name)
		}
	}
	// Registered returns definitions sorted by ID.
	fmtString := "\t%-" + strconv.Itoa(maxLen) + "s exifmeta.ID = 0x%04x\n"
	for _, def := range defs {
		fmt.Fprintf(&buf, fmtString, def.Name, uint16(def.ID))
	}
	buf.WriteString(")\n")
	_, err := io.WriteString(w, buf.String())
	return err
}
