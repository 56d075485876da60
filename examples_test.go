package exifmeta_test

import (
	"encoding/json"
	"fmt"

	"github.com/soypat/exifmeta"
	"github.com/soypat/exifmeta/exifid"
)

func ExampleID_String() {
	fmt.Println(exifid.FNumber, exifmeta.ID(0x8769), exifmeta.ID(0xbeef))
	//Output:
	// FNumber ExifOffset 0xbeef
}

func ExampleTagSet() {
	set := exifmeta.NewTagSet([]exifmeta.Tag{
		{ID: exifid.Make, Type: exifmeta.TypeString, Name: "Make", Value: "Canon"},
		{ID: exifid.Model, Type: exifmeta.TypeString, Name: "Model", Value: "EOS R5"},
		{ID: exifid.Make, Type: exifmeta.TypeString, Name: "Make", Value: "Canon Inc."},
	})
	for _, tag := range set.Tags() {
		fmt.Println(tag)
	}
	b, _ := json.Marshal(set)
	fmt.Println(string(b))
	//Output:
	// Make (string): Canon Inc.
	// Model (string): EOS R5
	// {"Make":"Canon Inc.","Model":"EOS R5"}
}
