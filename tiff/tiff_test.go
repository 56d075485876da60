package tiff

import (
	"encoding/binary"
	"errors"
	"reflect"
	"testing"

	"github.com/hashicorp/go-multierror"

	"github.com/soypat/exifmeta"
	"github.com/soypat/exifmeta/bytereader"
	"github.com/soypat/exifmeta/exifid"
	"github.com/soypat/exifmeta/internal/exiftest"
)

var orders = []binary.ByteOrder{binary.LittleEndian, binary.BigEndian}

func tagMap(tags []exifmeta.Tag) map[string]string {
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		m[tag.Name] = tag.Value
	}
	return m
}

func skippedErrors(t *testing.T, err error) []*EntryError {
	t.Helper()
	if err == nil {
		return nil
	}
	merr, ok := err.(*multierror.Error)
	if !ok {
		t.Fatalf("Skipped is %T, want *multierror.Error", err)
	}
	var out []*EntryError
	for _, e := range merr.Errors {
		var entryErr *EntryError
		if !errors.As(e, &entryErr) {
			t.Fatalf("skip reason %v is not an *EntryError", e)
		}
		out = append(out, entryErr)
	}
	return out
}

func mustDecode(t *testing.T, b []byte, opts ...Option) Result {
	t.Helper()
	res, err := Decode(b, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestDecode_inlineASCII(t *testing.T) {
	testCases := []struct {
		desc  string
		count uint32
		field string
		want  string
	}{
		{desc: "count 4 without null", count: 4, field: "ABCD", want: "ABC"},
		{desc: "count 4 with null", count: 4, field: "ABC\x00", want: "ABC"},
		{desc: "count 3 with null", count: 3, field: "AB\x00Z", want: "AB"},
		{desc: "early null", count: 4, field: "A\x00CD", want: "A"},
		{desc: "count 1", count: 1, field: "\x00", want: ""},
	}
	for _, order := range orders {
		for _, tC := range testCases {
			t.Run(order.String()+"/"+tC.desc, func(t *testing.T) {
				b := exiftest.TIFF(order, exiftest.Entry{
					Tag: uint16(exifid.Make), Type: 2, Count: tC.count, Value: []byte(tC.field),
				})
				res := mustDecode(t, b)
				if res.Order != order {
					t.Errorf("byte order %v, want %v", res.Order, order)
				}
				if len(res.Tags) != 1 {
					t.Fatalf("want exactly one tag, got %v", res.Tags)
				}
				got := res.Tags[0]
				if got.Name != "Make" || got.Value != tC.want {
					t.Errorf("got %s=%q, want Make=%q", got.Name, got.Value, tC.want)
				}
				if res.Skipped != nil {
					t.Errorf("unexpected skips: %v", res.Skipped)
				}
			})
		}
	}
}

func TestDecode_byteOrderFromHeader(t *testing.T) {
	// Same logical content encoded both ways must decode identically.
	var results [][]exifmeta.Tag
	for _, order := range orders {
		b := exiftest.TIFF(order,
			exiftest.ASCII(uint16(exifid.Make), "Canon"),
			exiftest.Short(order, uint16(exifid.Orientation), 6),
			exiftest.Long(order, uint16(exifid.ImageWidth), 4000),
			exiftest.Rational(order, uint16(exifid.XResolution), 72, 1),
		)
		results = append(results, mustDecode(t, b).Tags)
	}
	if !reflect.DeepEqual(results[0], results[1]) {
		t.Fatalf("little and big endian decodes differ:\n%v\n%v", results[0], results[1])
	}
	want := map[string]string{"Make": "Canon", "Orientation": "6", "ImageWidth": "4000", "XResolution": "72"}
	if got := tagMap(results[0]); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecode_indirectASCII(t *testing.T) {
	for _, order := range orders {
		t.Run(order.String(), func(t *testing.T) {
			const model = "Canon EOS R5"
			b := exiftest.TIFF(order, exiftest.ASCII(uint16(exifid.Model), model))
			res := mustDecode(t, b)
			if len(res.Tags) != 1 || res.Tags[0].Value != model {
				t.Fatalf("got %v, want Model=%q", res.Tags, model)
			}
			// The value field holds an offset; read as text it is something else.
			r := bytereader.New(b)
			e, err := ReadEntry(r, 10, order)
			if err != nil {
				t.Fatal(err)
			}
			if string(e.Field[:]) == model[:4] {
				t.Fatal("test setup: value field must not contain the string")
			}
			if int(e.ValueOrOffset) <= 10 || int(e.ValueOrOffset) >= len(b) {
				t.Fatalf("test setup: offset %d not in data area", e.ValueOrOffset)
			}
		})
	}
}

func TestDecode_adjacentIndirectASCII(t *testing.T) {
	order := binary.BigEndian
	// Both strings live back to back in the data area and must not bleed into each other.
	b := exiftest.TIFF(order,
		exiftest.ASCII(uint16(exifid.Software), "firmware 1.0.2"),
		exiftest.ASCII(uint16(exifid.Artist), "WRONG"),
	)
	res := mustDecode(t, b)
	got := tagMap(res.Tags)
	if got["Software"] != "firmware 1.0.2" || got["Artist"] != "WRONG" {
		t.Errorf("got %v", got)
	}
}

func TestDecode_rational(t *testing.T) {
	testCases := []struct {
		num, den uint32
		want     string
	}{
		{1, 1, "1"},
		{1, 2, "1/2"},
		{28, 10, "28/10"},
		{0, 0, "0/0"},
	}
	for _, order := range orders {
		for _, tC := range testCases {
			b := exiftest.TIFF(order, exiftest.Rational(order, uint16(exifid.FNumber), tC.num, tC.den))
			res := mustDecode(t, b)
			if len(res.Tags) != 1 || res.Tags[0].Value != tC.want {
				t.Errorf("%v %d/%d: got %v, want %q", order, tC.num, tC.den, res.Tags, tC.want)
			}
		}
	}
}

func TestDecode_outOfBoundsEntrySkipped(t *testing.T) {
	for _, order := range orders {
		t.Run(order.String(), func(t *testing.T) {
			b := exiftest.TIFF(order,
				exiftest.Entry{Tag: uint16(exifid.Model), Type: 2, Count: 20, Field: exiftest.U32(order, 0xffff)},
				exiftest.Entry{Tag: uint16(exifid.FNumber), Type: 5, Count: 1, Field: exiftest.U32(order, 0xfffffff0)},
				exiftest.ASCII(uint16(exifid.Make), "NIKON CORPORATION"),
				exiftest.Short(order, uint16(exifid.ISO), 200),
			)
			res := mustDecode(t, b)
			want := map[string]string{"Make": "NIKON CORPORATION", "ISO": "200"}
			if got := tagMap(res.Tags); !reflect.DeepEqual(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
			skips := skippedErrors(t, res.Skipped)
			if len(skips) != 2 {
				t.Fatalf("want 2 skipped entries, got %v", res.Skipped)
			}
			for i, s := range skips {
				if s.Index != i || !errors.Is(s, bytereader.ErrOutOfBounds) {
					t.Errorf("skip %d: got index %d err %v", i, s.Index, s.Err)
				}
			}
		})
	}
}

func TestDecode_unregisteredTagDropped(t *testing.T) {
	order := binary.LittleEndian
	b := exiftest.TIFF(order,
		exiftest.ASCII(0xc4a5, "PrintIM"), // Not in registry.
		exiftest.Short(order, 0x0001, 1),
		exiftest.ASCII(uint16(exifid.Make), "FUJIFILM"),
	)
	res := mustDecode(t, b)
	if len(res.Tags) != 1 || res.Tags[0].Name != "Make" {
		t.Fatalf("got %v, want only Make", res.Tags)
	}
	if res.Skipped != nil {
		t.Errorf("unregistered tags must not be reported as skipped: %v", res.Skipped)
	}
}

func TestDecode_unsupportedTypes(t *testing.T) {
	order := binary.BigEndian
	b := exiftest.TIFF(order,
		exiftest.Entry{Tag: uint16(exifid.ExifVersion), Type: 7, Count: 4, Value: []byte("0232")},
		exiftest.Entry{Tag: uint16(exifid.ShutterSpeedValue), Type: 10, Count: 1, Value: make([]byte, 8)},
		exiftest.Entry{Tag: uint16(exifid.Flash), Type: 99, Count: 1},
		exiftest.Short(order, uint16(exifid.Flash), 16),
	)
	res := mustDecode(t, b)
	if got := tagMap(res.Tags); !reflect.DeepEqual(got, map[string]string{"Flash": "16"}) {
		t.Errorf("got %v", got)
	}
	skips := skippedErrors(t, res.Skipped)
	if len(skips) != 3 {
		t.Fatalf("want 3 skips, got %v", res.Skipped)
	}
	for _, s := range skips {
		if !errors.Is(s, ErrUnsupportedType) {
			t.Errorf("want ErrUnsupportedType, got %v", s)
		}
	}
}

func TestDecode_multiValueNumbers(t *testing.T) {
	for _, order := range orders {
		bps := append(exiftest.U16(order, 8), exiftest.U16(order, 10)...)
		bps = append(bps, exiftest.U16(order, 12)...)
		b := exiftest.TIFF(order,
			// 6 bytes: stored at an offset, first value reported.
			exiftest.Entry{Tag: uint16(exifid.BitsPerSample), Type: 3, Count: 3, Value: bps},
			// 4 bytes: two shorts stored in place.
			exiftest.Entry{Tag: uint16(exifid.YCbCrPositioning), Type: 3, Count: 2, Value: append(exiftest.U16(order, 2), exiftest.U16(order, 9)...)},
			exiftest.Entry{Tag: uint16(exifid.ImageHeight), Type: 4, Count: 2, Value: append(exiftest.U32(order, 3000), exiftest.U32(order, 1)...)},
			exiftest.Entry{Tag: uint16(exifid.ISO), Type: 3, Count: 0},
		)
		res := mustDecode(t, b)
		want := map[string]string{"BitsPerSample": "8", "YCbCrPositioning": "2", "ImageHeight": "3000"}
		if got := tagMap(res.Tags); !reflect.DeepEqual(got, want) {
			t.Errorf("%v: got %v, want %v", order, got, want)
		}
		skips := skippedErrors(t, res.Skipped)
		if len(skips) != 1 || !errors.Is(skips[0], ErrEmptyValue) {
			t.Errorf("%v: want one ErrEmptyValue skip, got %v", order, res.Skipped)
		}
	}
}

func TestDecode_badHeader(t *testing.T) {
	testCases := []struct {
		desc string
		data []byte
		want error
	}{
		{desc: "bad byte order", data: []byte("XX\x00\x2a\x00\x00\x00\x08\x00\x00"), want: ErrByteOrder},
		{desc: "swapped case", data: []byte("ii\x2a\x00\x08\x00\x00\x00\x00\x00"), want: ErrByteOrder},
		{desc: "empty", data: nil, want: bytereader.ErrOutOfBounds},
		{desc: "truncated offset", data: []byte("II\x2a\x00\x08"), want: bytereader.ErrOutOfBounds},
		{desc: "IFD past end", data: []byte("MM\x00\x2a\x00\x00\x01\x00"), want: bytereader.ErrOutOfBounds},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			res, err := Decode(tC.data)
			if !errors.Is(err, tC.want) {
				t.Fatalf("want %v, got %v", tC.want, err)
			}
			if len(res.Tags) != 0 {
				t.Errorf("want no tags, got %v", res.Tags)
			}
		})
	}
}

func TestDecode_truncatedDirectory(t *testing.T) {
	order := binary.LittleEndian
	b := exiftest.TIFF(order,
		exiftest.Short(order, uint16(exifid.Orientation), 1),
		exiftest.Short(order, uint16(exifid.ISO), 400),
	)
	// Claim 5 entries; the last ones run into the next-IFD field and off the end.
	order.PutUint16(b[8:], 5)
	res := mustDecode(t, b)
	got := tagMap(res.Tags)
	if got["Orientation"] != "1" || got["ISO"] != "400" {
		t.Fatalf("entries before the truncation must decode: %v", got)
	}
	for _, s := range skippedErrors(t, res.Skipped) {
		if !errors.Is(s, bytereader.ErrOutOfBounds) {
			t.Errorf("want out of bounds skip, got %v", s)
		}
	}
}

func TestDecode_subIFD(t *testing.T) {
	for _, order := range orders {
		b := exiftest.TIFF(order,
			exiftest.ASCII(uint16(exifid.Make), "Canon"),
			exiftest.Entry{Tag: uint16(exifid.ExifOffset), Type: 4, Count: 1, Sub: []exiftest.Entry{
				exiftest.Rational(order, uint16(exifid.ExposureTime), 1, 250),
				exiftest.Short(order, uint16(exifid.ISO), 100),
			}},
		)
		plain := mustDecode(t, b)
		if _, ok := tagMap(plain.Tags)["ExposureTime"]; ok {
			t.Errorf("%v: sub-IFD must not be followed by default", order)
		}
		if _, ok := tagMap(plain.Tags)["ExifOffset"]; !ok {
			t.Errorf("%v: pointer tag itself must be reported", order)
		}
		res := mustDecode(t, b, WithSubIFDs())
		var names []string
		for _, tag := range res.Tags {
			names = append(names, tag.Name)
		}
		want := []string{"Make", "ExifOffset", "ExposureTime", "ISO"}
		if !reflect.DeepEqual(names, want) {
			t.Errorf("%v: got order %v, want %v", order, names, want)
		}
		if v := tagMap(res.Tags)["ExposureTime"]; v != "1/250" {
			t.Errorf("%v: ExposureTime %q", order, v)
		}
	}
}

func TestDecode_subIFDLoop(t *testing.T) {
	order := binary.BigEndian
	// ExifOffset points back at IFD0.
	b := exiftest.TIFF(order,
		exiftest.Long(order, uint16(exifid.ExifOffset), 8),
		exiftest.Short(order, uint16(exifid.ISO), 100),
	)
	res := mustDecode(t, b, WithSubIFDs())
	if len(res.Tags) != 2 {
		t.Fatalf("IFD0 must be decoded once, got %v", res.Tags)
	}
	skips := skippedErrors(t, res.Skipped)
	if len(skips) != 1 || !errors.Is(skips[0], errRecursiveDir) {
		t.Fatalf("want one recursive dir skip, got %v", res.Skipped)
	}
}

func TestDecode_idempotent(t *testing.T) {
	order := binary.LittleEndian
	b := exiftest.TIFF(order,
		exiftest.ASCII(uint16(exifid.Make), "Apple"),
		exiftest.ASCII(uint16(exifid.Model), "iPhone 15 Pro"),
		exiftest.Entry{Tag: uint16(exifid.Copyright), Type: 2, Count: 9, Field: exiftest.U32(order, 1<<20)},
		exiftest.Rational(order, uint16(exifid.FocalLength), 6765, 1000),
	)
	orig := append([]byte(nil), b...)
	first := mustDecode(t, b)
	second := mustDecode(t, b)
	if !reflect.DeepEqual(first.Tags, second.Tags) {
		t.Fatalf("decodes differ:\n%v\n%v", first.Tags, second.Tags)
	}
	if first.Skipped.Error() != second.Skipped.Error() {
		t.Fatalf("skip reports differ:\n%v\n%v", first.Skipped, second.Skipped)
	}
	if !reflect.DeepEqual(b, orig) {
		t.Fatal("input buffer was modified")
	}
}

func TestValueByteLength(t *testing.T) {
	testCases := []struct {
		tp    exifmeta.Type
		count uint32
		want  uint64
		ok    bool
	}{
		{exifmeta.TypeString, 4, 4, true},
		{exifmeta.TypeString, 5, 5, true},
		{exifmeta.TypeUint16, 2, 4, true},
		{exifmeta.TypeUint16, 3, 6, true},
		{exifmeta.TypeUint32, 1, 4, true},
		{exifmeta.TypeURational64, 1, 8, true},
		{exifmeta.TypeURational64, 1<<32 - 1, 8 * (1<<32 - 1), true},
		{exifmeta.TypeFloat64, 0, 0, true},
		{0, 1, 0, false},
		{99, 1, 0, false},
	}
	for _, tC := range testCases {
		got, ok := ValueByteLength(tC.tp, tC.count)
		if got != tC.want || ok != tC.ok {
			t.Errorf("ValueByteLength(%v, %d) = %d, %v; want %d, %v", tC.tp, tC.count, got, ok, tC.want, tC.ok)
		}
	}
}
